package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword("s3cret-pass", hash))
	assert.False(t, VerifyPassword("wrong-pass", hash))
	assert.False(t, VerifyPassword("s3cret-pass", "not-a-hash"))
}

func TestHashPasswordRejectsShortInput(t *testing.T) {
	_, err := HashPassword("abc")
	assert.Error(t, err)
}
