package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(NotFound("gone")))
	assert.Equal(t, http.StatusForbidden, StatusOf(Forbidden("no")))
	assert.Equal(t, http.StatusConflict, StatusOf(Conflict("dup")))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(Unauthenticated("who")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(ServerError("boom")))
	// plain errors are validation failures
	assert.Equal(t, http.StatusBadRequest, StatusOf(errors.New("bad input")))
}

func TestAllowedImageExt(t *testing.T) {
	assert.True(t, AllowedImageExt("photo.jpg"))
	assert.True(t, AllowedImageExt("photo.JPEG"))
	assert.True(t, AllowedImageExt("photo.png"))
	assert.True(t, AllowedImageExt("photo.webp"))
	assert.False(t, AllowedImageExt("photo.gif"))
	assert.False(t, AllowedImageExt("script.sh"))
	assert.False(t, AllowedImageExt("noext"))
}
