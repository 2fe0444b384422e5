package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripweaver/internal/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	assert.True(t, auth.CheckPassword(hash, "hunter22"))
	assert.False(t, auth.CheckPassword(hash, "hunter23"))
	assert.False(t, auth.CheckPassword("not-a-hash", "hunter22"))
}

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens := auth.NewTokens("test-secret")

	token, err := tokens.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
}

func TestTokens_VerifyRejectsGarbage(t *testing.T) {
	tokens := auth.NewTokens("test-secret")

	_, err := tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = tokens.Verify("")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokens_VerifyRejectsWrongSecret(t *testing.T) {
	issued, err := auth.NewTokens("secret-a").Issue(7)
	require.NoError(t, err)

	_, err = auth.NewTokens("secret-b").Verify(issued)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
