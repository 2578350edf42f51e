package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT(t *testing.T) {
	secret := []byte("test-secret")

	tokenString, err := GenerateJWT("user123", "asha@example.in", "customer", secret, UserTokenTTL)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user123", claims["user_id"])
	assert.Equal(t, "asha@example.in", claims["email"])
	assert.Equal(t, "customer", claims["role"])
	assert.NotEmpty(t, claims["jti"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, exp, float64(time.Now().Unix()))
}

func TestGenerateJWTWrongSecret(t *testing.T) {
	tokenString, err := GenerateJWT("user123", "asha@example.in", "customer", []byte("secret-a"), UserTokenTTL)
	require.NoError(t, err)

	_, err = jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret-b"), nil
	})
	assert.Error(t, err)
}

func TestGenerateJWTUniqueJTI(t *testing.T) {
	secret := []byte("test-secret")

	t1, err := GenerateJWT("user123", "a@b.in", "customer", secret, UserTokenTTL)
	require.NoError(t, err)
	t2, err := GenerateJWT("user123", "a@b.in", "customer", secret, UserTokenTTL)
	require.NoError(t, err)

	// Deux sessions du même compte restent révocables indépendamment
	assert.NotEqual(t, t1, t2)
}
