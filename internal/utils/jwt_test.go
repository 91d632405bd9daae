package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAdminJWT(t *testing.T) {
	t.Run("signed token carries email, admin role and expiry", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		tokenString, err := GenerateAdminJWT("admin@bookhaven.test")
		require.NoError(t, err)

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "admin@bookhaven.test", claims["email"])
		assert.Equal(t, "admin", claims["role"])

		exp, ok := claims["exp"].(float64)
		require.True(t, ok)
		assert.Greater(t, int64(exp), time.Now().Unix())
	})

	t.Run("missing secret is an error, never a default key", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		tokenString, err := GenerateAdminJWT("admin@bookhaven.test")
		assert.Error(t, err)
		assert.Empty(t, tokenString)
	})
}
