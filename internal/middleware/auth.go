package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/apperr"
	"github.com/labs-polaris/Polaris-Back-Web/internal/auth"
	"github.com/labs-polaris/Polaris-Back-Web/internal/models"
	"github.com/labs-polaris/Polaris-Back-Web/internal/response"
	"github.com/labs-polaris/Polaris-Back-Web/internal/types"
	"gorm.io/gorm"
)

// Auth resolves the request identity from the bearer credential. Missing
// credential is AUTH_REQUIRED; a bad signature, expiry, wrong type tag
// (refresh tokens never authenticate a request) or unknown subject is
// AUTH_INVALID.
func Auth(tm *auth.TokenManager, gdb *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			response.AbortFail(ctx, apperr.AuthRequired("Authentication required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.AbortFail(ctx, apperr.AuthRequired("Authorization header format must be Bearer {token}"))
			return
		}

		userID, tokenType, err := tm.Verify(parts[1])

		if err != nil {
			response.AbortFail(ctx, apperr.AuthInvalid("Invalid token"))
			return
		}

		if tokenType != auth.TokenTypeAccess {
			response.AbortFail(ctx, apperr.AuthInvalid("Invalid access token"))
			return
		}

		var user models.User

		if err := gdb.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.AbortFail(ctx, apperr.AuthInvalid("User not found"))
				return
			}
			response.AbortFail(ctx, apperr.Internal("Failed to resolve user"))
			return
		}

		if !user.IsActive {
			response.AbortFail(ctx, apperr.AuthInvalid("User not found"))
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

// CurrentUser returns the identity stored by Auth.
func CurrentUser(ctx *gin.Context) (models.User, bool) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)

	return user, ok
}
