package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", time.Hour, "gpevim")

	token, err := m.GenerateAdminToken("ADM")
	require.NoError(t, err)

	claims, err := m.ValidateAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ADM", claims.Username)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "gpevim", claims.Issuer)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewManager("one", time.Hour, "").GenerateAdminToken("admin")
	require.NoError(t, err)

	_, err = NewManager("two", time.Hour, "").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	m := NewManager("secret", time.Hour, "")
	claims := Claims{
		Username: "admin",
		Role:     RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateAdmin_WrongRole(t *testing.T) {
	claims := Claims{Username: "x", Role: "viewer"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour, "").ValidateAdminToken(token)
	assert.ErrorContains(t, err, "invalid role")
}
