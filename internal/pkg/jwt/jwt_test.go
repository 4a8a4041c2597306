package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "2h")

	token, expiresAt, err := svc.GenerateAccessToken("127.0.0.1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(2*time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	assert.Equal(t, Subject, decoded.Subject())
	typ, ok := decoded.Get("type")
	assert.True(t, ok)
	assert.Equal(t, "access", typ)
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	_, _, err := NewJWTService("secret", "soon").GenerateAccessToken("")
	assert.Error(t, err)
}

func TestDecode_WrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a", "1h").GenerateAccessToken("")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", "1h").JWTAuth().Decode(token)
	assert.Error(t, err)
}
