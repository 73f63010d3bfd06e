package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestTokenRoundtrip(t *testing.T) {
	access, refresh, err := GenerateTokens(42, "trainer@example.com", "trainer", "access-secret", "refresh-secret")
	require.NoError(t, err)

	claims, err := ValidateToken(access, "access-secret")
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "trainer@example.com", claims.Email)
	assert.Equal(t, "trainer", claims.Role)
	assert.Equal(t, "access", claims.TokenType)

	refreshClaims, err := ValidateToken(refresh, "refresh-secret")
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	access, _, err := GenerateTokens(42, "a@example.com", "client", "right", "right")
	require.NoError(t, err)

	_, err = ValidateToken(access, "wrong")
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.jwt", "secret")
	assert.Error(t, err)
}

func TestGenerateTokensEmptySecret(t *testing.T) {
	_, _, err := GenerateTokens(1, "a@example.com", "client", "", "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func TestRefreshAccessToken(t *testing.T) {
	_, refresh, err := GenerateTokens(7, "c@example.com", "client", "as", "rs")
	require.NoError(t, err)

	newAccess, claims, err := RefreshAccessToken(refresh, "rs", "as")
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)

	accessClaims, err := ValidateToken(newAccess, "as")
	require.NoError(t, err)
	assert.Equal(t, "access", accessClaims.TokenType)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	access, _, err := GenerateTokens(7, "c@example.com", "client", "as", "rs")
	require.NoError(t, err)

	// an access token signed with the refresh secret is still the wrong type
	_, _, err = RefreshAccessToken(access, "as", "as")
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}
