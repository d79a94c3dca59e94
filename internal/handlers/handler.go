package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/labs-polaris/Polaris-Back-Web/internal/apperr"
	"github.com/labs-polaris/Polaris-Back-Web/internal/auth"
	"gorm.io/gorm"
)

// Handler carries the per-process dependencies every endpoint needs: the
// persistence handle and the token manager. Everything else arrives as
// request input.
type Handler struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager
}

func New(gdb *gorm.DB, tm *auth.TokenManager) *Handler {
	return &Handler{DB: gdb, Tokens: tm}
}

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// bindJSON binds and validates the request payload, converting binding
// failures into the VALIDATION_ERROR envelope with per-field detail.
func bindJSON(ctx *gin.Context, dest interface{}) *apperr.Error {
	err := ctx.ShouldBindJSON(dest)

	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors

	if errors.As(err, &validationErrs) {
		detail := make([]fieldError, 0, len(validationErrs))

		for _, fe := range validationErrs {
			detail = append(detail, fieldError{Field: fe.Field(), Reason: fe.Tag()})
		}

		return apperr.Validation("Validation failed", detail)
	}

	return apperr.Validation("Validation failed", err.Error())
}

// storeError maps persistence failures: uniqueness violations become
// CONFLICT at the point of write, everything else is surfaced as-is.
func storeError(err error, conflictMessage string) *apperr.Error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(conflictMessage)
	}

	return apperr.Internal("Internal server error")
}
