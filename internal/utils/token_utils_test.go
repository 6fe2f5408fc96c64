package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT("user-42", "s3cret", time.Hour, "manna")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, "manna", claims.Issuer)

	_, err = ParseAndValidateJWT(token, "other")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("user-42", "s3cret", -time.Minute, "manna")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "s3cret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
