package jwthelper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	key := []byte("secret")

	token, err := GenerateToken(key, 42, "curl/8")
	require.NoError(t, err)

	claims, err := ParseToken(key, token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "curl/8", claims.UserAgent)
	assert.NotEmpty(t, claims.ID)
}

func TestParseToken_Rejects(t *testing.T) {
	token, err := GenerateToken([]byte("secret"), 1, "")
	require.NoError(t, err)

	_, err = ParseToken([]byte("other"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken([]byte("secret"), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
