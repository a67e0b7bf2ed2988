package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/server/http/dto"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrValidationFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrShopNotFound), errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrNotAuthorized), errors.Is(err, domainErrors.ErrShopNotApproved):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	respondError(c, statusFor(err), err)
}

func respondError(c *gin.Context, status int, err error) {
	body := dto.ErrorResponse{Code: domainErrors.Code(err), Message: err.Error()}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		body.Message = http.StatusText(status)
	}

	var fields domainErrors.FieldErrors
	if errors.As(err, &fields) {
		body.Message = domainErrors.ErrValidationFailed.Error()
		body.Errors = fields
	}
	c.AbortWithStatusJSON(status, body)
}
