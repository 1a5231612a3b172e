package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse(t *testing.T) {
	token, err := Generate(secret, "user-1", "staff", "sweetbite", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(secret, "sweetbite", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "staff", claims.Role)
}

func TestParse_Rechazos(t *testing.T) {
	expired, err := Generate(secret, "user-1", "staff", "sweetbite", -time.Minute)
	require.NoError(t, err)
	_, err = Parse(secret, "sweetbite", expired)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)

	good, err := Generate(secret, "user-1", "staff", "otro", time.Hour)
	require.NoError(t, err)
	_, err = Parse(secret, "sweetbite", good)
	assert.ErrorIs(t, err, gojwt.ErrTokenInvalidIssuer)

	_, err = Parse("otro-secreto", "", good)
	assert.ErrorIs(t, err, gojwt.ErrTokenSignatureInvalid)

	noRole, err := Generate(secret, "user-1", "", "sweetbite", time.Hour)
	require.NoError(t, err)
	_, err = Parse(secret, "sweetbite", noRole)
	assert.ErrorIs(t, err, ErrMissingClaims)

	_, err = Parse("", "", good)
	assert.Error(t, err)
}
