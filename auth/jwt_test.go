package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	tm, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	token, err := tm.Generate("64f0c9e1a2b3c4d5e6f70001", "patient", "jane@example.com")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "64f0c9e1a2b3c4d5e6f70001", claims.ID)
	assert.Equal(t, "patient", claims.Role)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestExpiredTokenIsInvalid(t *testing.T) {
	tm, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	expired := &Claims{
		ID:   "64f0c9e1a2b3c4d5e6f70001",
		Role: "doctor",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString(tm.secret)
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedTokenIsInvalid(t *testing.T) {
	tm, _ := NewTokenManager("test-secret")
	other, _ := NewTokenManager("other-secret")

	token, err := other.Generate("64f0c9e1a2b3c4d5e6f70001", "admin", "x@example.com")
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
