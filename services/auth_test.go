package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"MediConsult/auth"
	"MediConsult/models"
	"MediConsult/utils"
)

func TestHashResetToken(t *testing.T) {
	h1 := HashResetToken("token-a")
	h2 := HashResetToken("token-a")
	h3 := HashResetToken("token-b")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64) // hex encoded sha-256
	assert.NotContains(t, h1, "token-a")
}

func newLoginUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:           primitive.NewObjectID(),
		Email:        "jane@example.com",
		PasswordHash: hash,
		Role:         "patient",
		IsActive:     true,
	}
}

func TestVerifyLoginLockout(t *testing.T) {
	ctx := context.Background()

	t.Run("correct password passes", func(t *testing.T) {
		user := newLoginUser(t, "secret123")
		assert.NoError(t, verifyLogin(ctx, user, "secret123"))
	})

	t.Run("fifth failure locks the identity", func(t *testing.T) {
		user := newLoginUser(t, "secret123")
		for i := 0; i < maxLoginAttempts-1; i++ {
			err := verifyLogin(ctx, user, "wrong-pass")
			require.Error(t, err)
			assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))
		}
		err := verifyLogin(ctx, user, "wrong-pass")
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
		assert.Equal(t, utils.TOO_MANY_LOGIN_ATTEMPTS, err.Error())
	})

	t.Run("locked identity rejects even the correct password", func(t *testing.T) {
		user := newLoginUser(t, "secret123")
		for i := 0; i < maxLoginAttempts; i++ {
			_ = verifyLogin(ctx, user, "wrong-pass")
		}
		err := verifyLogin(ctx, user, "secret123")
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
		assert.Equal(t, utils.TOO_MANY_LOGIN_ATTEMPTS, err.Error())
	})

	t.Run("success below the threshold clears the counter", func(t *testing.T) {
		user := newLoginUser(t, "secret123")
		for i := 0; i < maxLoginAttempts-1; i++ {
			_ = verifyLogin(ctx, user, "wrong-pass")
		}
		require.NoError(t, verifyLogin(ctx, user, "secret123"))

		err := verifyLogin(ctx, user, "wrong-pass")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, utils.StatusOf(err))
	})
}

func TestUserSerializationHidesSecrets(t *testing.T) {
	user := models.User{
		ID:             primitive.NewObjectID(),
		Email:          "jane@example.com",
		PasswordHash:   "$2a$10$abcdefghijklmnopqrstuv",
		Role:           "patient",
		ResetTokenHash: "deadbeef",
	}
	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "passwordHash")
	assert.NotContains(t, decoded, "resetTokenHash")
	assert.NotContains(t, string(raw), "$2a$10$")
	assert.Equal(t, "jane@example.com", decoded["email"])
	assert.Equal(t, "patient", decoded["role"])
}
