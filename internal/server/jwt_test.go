package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", 1)

	token, err := svc.GenerateToken("analyst")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "analyst", claims.Subject)
}

func TestJWTRejectsEmptyToken(t *testing.T) {
	svc := NewJWTService("secret", 1)
	_, err := svc.ValidateToken("")
	assert.Error(t, err)
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	svc := NewJWTService("secret", 1)
	token, err := svc.GenerateToken("analyst")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestJWTRejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("other-secret", 1).GenerateToken("analyst")
	require.NoError(t, err)

	_, err = NewJWTService("secret", 1).ValidateToken(token)
	assert.Error(t, err)
}
