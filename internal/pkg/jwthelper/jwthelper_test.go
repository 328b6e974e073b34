package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, 42, "test-agent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(key, token, "test-agent")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestParseToken_Rejections(t *testing.T) {
	key := []byte("test-signing-key")

	token, err := GenerateToken(key, 42, "test-agent")
	require.NoError(t, err)

	t.Run("wrong key", func(t *testing.T) {
		_, err := ParseToken([]byte("other-key"), token, "test-agent")
		assert.Error(t, err)
	})

	t.Run("wrong user agent", func(t *testing.T) {
		_, err := ParseToken(key, token, "other-agent")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseToken(key, "not.a.token", "test-agent")
		assert.Error(t, err)
	})
}
