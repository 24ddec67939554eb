package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartstore_report/config"
)

func testConfig() config.Config {
	return config.Config{
		JWTConfig: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  2,
			RefreshTokenTTL: 24,
		},
	}
}

// TestGenerateAndParseTokens 生成的令牌可以解析且sub为用户ID
func TestGenerateAndParseTokens(t *testing.T) {
	cfg := testConfig()

	accessToken, refreshToken, err := GenerateTokens(42, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	token, err := ParseToken(accessToken, cfg)
	require.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "42", claims["sub"])
}

// TestParseTokenWrongSecret 密钥不匹配的令牌解析失败
func TestParseTokenWrongSecret(t *testing.T) {
	cfg := testConfig()
	accessToken, _, err := GenerateTokens(42, cfg)
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.JWTConfig.SecretKey = "another-secret"
	token, err := ParseToken(accessToken, otherCfg)
	if err == nil {
		assert.False(t, token.Valid)
	}
}

// TestRefreshAccessToken 刷新令牌换取新的访问令牌
func TestRefreshAccessToken(t *testing.T) {
	cfg := testConfig()
	_, refreshToken, err := GenerateTokens(42, cfg)
	require.NoError(t, err)

	newAccess, err := RefreshAccessToken(refreshToken, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)

	token, err := ParseToken(newAccess, cfg)
	require.NoError(t, err)
	assert.True(t, token.Valid)
}

// TestPagination 分页参数的归一
func TestPagination(t *testing.T) {
	offset, limit := Pagination(1, 10)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)

	offset, limit = Pagination(3, 20)
	assert.Equal(t, 40, offset)
	assert.Equal(t, 20, limit)

	offset, limit = Pagination(0, 0)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 10, limit)
}
