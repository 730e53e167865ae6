package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError carries the HTTP status a failure should be reported with.
// Controllers map every other error to 400, mirroring the flat per-request
// error policy used across the service layer.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func ValidationError(message string) *APIError {
	return NewAPIError(http.StatusBadRequest, message)
}

func Unauthenticated(message string) *APIError {
	return NewAPIError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *APIError {
	return NewAPIError(http.StatusForbidden, message)
}

func NotFound(message string) *APIError {
	return NewAPIError(http.StatusNotFound, message)
}

func Conflict(message string) *APIError {
	return NewAPIError(http.StatusConflict, message)
}

func ServerError(message string) *APIError {
	return NewAPIError(http.StatusInternalServerError, message)
}

// StatusOf resolves the HTTP status for an error. Plain errors are treated as
// validation failures.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusBadRequest
}

func SuccessResponse(data interface{}) gin.H {
	return gin.H{"success": true, "data": data}
}

func SuccessMessage(message string) gin.H {
	return gin.H{"success": true, "message": message}
}

func FailedResponse(err error) gin.H {
	return gin.H{"success": false, "message": err.Error()}
}

// Fail writes the error envelope with the status carried by the error.
func Fail(c *gin.Context, err error) {
	c.JSON(StatusOf(err), FailedResponse(err))
}
