package method

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRuleFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// TestLookupRewardInRange 日期范围内（含端点）的规则命中
func TestLookupRewardInRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), RewardFileName)
	writeRuleFile(t, path, `{"rewards":[
		{"start_date":"2024-01-01","end_date":"2024-01-31","product_id":"1001","reward":500}
	]}`)

	assert.Equal(t, 500, LookupReward(path, "1001", "2024-01-10"))
	assert.Equal(t, 500, LookupReward(path, "1001", "2024-01-01"))
	assert.Equal(t, 500, LookupReward(path, "1001", "2024-01-31"))
	assert.Equal(t, 0, LookupReward(path, "1001", "2024-02-01"))
	assert.Equal(t, 0, LookupReward(path, "1001", "2023-12-31"))
	assert.Equal(t, 0, LookupReward(path, "9999", "2024-01-10"))
}

// TestLookupRewardOverlap 重叠的规则先声明者优先
func TestLookupRewardOverlap(t *testing.T) {
	path := filepath.Join(t.TempDir(), RewardFileName)
	writeRuleFile(t, path, `{"rewards":[
		{"start_date":"2024-01-01","end_date":"2024-01-31","product_id":"1001","reward":500},
		{"start_date":"2024-01-01","end_date":"2024-01-31","product_id":"1001","reward":300}
	]}`)

	assert.Equal(t, 500, LookupReward(path, "1001", "2024-01-10"))
}

// TestLookupRewardNumericProductID JSON中数字形式的product_id同样命中
func TestLookupRewardNumericProductID(t *testing.T) {
	path := filepath.Join(t.TempDir(), RewardFileName)
	writeRuleFile(t, path, `{"rewards":[
		{"start_date":"2024-01-01","end_date":"2024-01-31","product_id":1001,"reward":500}
	]}`)

	assert.Equal(t, 500, LookupReward(path, "1001", "2024-01-10"))
}

// TestLookupRewardInvalidEntries 负数金额、非数字金额、坏日期的条目被跳过
func TestLookupRewardInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), RewardFileName)
	writeRuleFile(t, path, `{"rewards":[
		{"start_date":"2024-01-01","end_date":"2024-01-31","product_id":"1001","reward":-100},
		{"start_date":"not-a-date","end_date":"2024-01-31","product_id":"1001","reward":999},
		{"start_date":"2024-01-01","end_date":"2024-01-31","product_id":"1001","reward":"abc"},
		{"start_date":"2024-01-01","end_date":"2024-01-31","product_id":"1001","reward":300}
	]}`)

	assert.Equal(t, 300, LookupReward(path, "1001", "2024-01-10"))
}

// TestLookupRewardDegradedFiles 文件缺失、为空、格式错误一律返回0
func TestLookupRewardDegradedFiles(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, 0, LookupReward(filepath.Join(dir, "없는파일.json"), "1001", "2024-01-10"))

	empty := filepath.Join(dir, "empty.json")
	writeRuleFile(t, empty, "")
	assert.Equal(t, 0, LookupReward(empty, "1001", "2024-01-10"))

	malformed := filepath.Join(dir, "broken.json")
	writeRuleFile(t, malformed, "{rewards: oops")
	assert.Equal(t, 0, LookupReward(malformed, "1001", "2024-01-10"))
}

// TestLookupPurchaseCount 가구매개수查询规则与리워드一致
func TestLookupPurchaseCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), PurchaseFileName)
	writeRuleFile(t, path, `{"purchases":[
		{"start_date":"2024-01-01","end_date":"2024-01-31","product_id":"1001","purchase_count":3}
	]}`)

	assert.Equal(t, 3, LookupPurchaseCount(path, "1001", "2024-01-15"))
	assert.Equal(t, 0, LookupPurchaseCount(path, "1001", "2024-02-15"))
	assert.Equal(t, 0, LookupPurchaseCount(path, "1002", "2024-01-15"))
}

// TestRuleStoreRoundTrip 规则文件保存后可重新读取
func TestRuleStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), RewardFileName)

	store := RewardStore{Rewards: []RewardRule{
		{StartDate: "2024-01-01", EndDate: "2024-01-31", ProductID: "1001", Reward: 500.0},
	}}
	require.NoError(t, SaveRewardStore(path, store))

	loaded := LoadRewardStore(path)
	require.Len(t, loaded.Rewards, 1)
	assert.Equal(t, "2024-01-01", loaded.Rewards[0].StartDate)
	assert.Equal(t, 500, LookupReward(path, "1001", "2024-01-10"))
}
