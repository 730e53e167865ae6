package utils

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const MaxImageBytes = 2 << 20

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func AllowedImageExt(filename string) bool {
	return allowedImageExts[strings.ToLower(filepath.Ext(filename))]
}

/*
* Store an optional profile image from a multipart form
* Returns the public URL path, empty when the field was not supplied
 */
func SaveProfileImage(c *gin.Context, field string, dir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		// field absent, image is optional
		return "", nil
	}
	if !AllowedImageExt(file.Filename) {
		return "", ValidationError(UNSUPPORTED_IMAGE_TYPE)
	}
	if file.Size > MaxImageBytes {
		return "", ValidationError(IMAGE_TOO_LARGE)
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return "", ServerError("failed to store uploaded image")
	}
	return "/uploads/" + name, nil
}
