package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSessionGuard 同一时刻只允许一个处理会话
func TestSessionGuard(t *testing.T) {
	require.NoError(t, acquireSession("监视"))
	defer releaseSession()

	running, kind := SessionRunning()
	assert.True(t, running)
	assert.Equal(t, "监视", kind)

	assert.Error(t, acquireSession("批处理"))

	ctx := newTestContext(t)
	assert.Error(t, RunBatch(ctx))
}

// TestStopMonitoringWithoutSession 没有监视会话时停止请求报错
func TestStopMonitoringWithoutSession(t *testing.T) {
	ctx := newTestContext(t)
	assert.Error(t, StopMonitoring(ctx))
	assert.False(t, ctx.StopRequested())
}
