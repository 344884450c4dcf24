package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/response"
)

// SendError writes the {detail} error body every failure uses.
func SendError(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, response.ErrorResponse{Detail: detail})
}

func SendBadRequestError(c *gin.Context, detail string) {
	SendError(c, http.StatusBadRequest, detail)
}

func SendUnauthorizedError(c *gin.Context, detail string) {
	SendError(c, http.StatusUnauthorized, detail)
}

func SendInternalError(c *gin.Context, detail string) {
	SendError(c, http.StatusInternalServerError, detail)
}

// SendDomainError maps the error taxonomy onto status codes; anything
// outside it is a storage-level failure and becomes a 500.
func SendDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		SendError(c, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		SendError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		SendError(c, http.StatusForbidden, "Access forbidden")
	case errors.Is(err, domain.ErrTaskNotFound):
		SendError(c, http.StatusNotFound, "Task not found")
	case errors.Is(err, domain.ErrUserNotFound):
		SendError(c, http.StatusNotFound, "User not found")
	default:
		SendError(c, http.StatusInternalServerError, "Internal server error")
	}
}
