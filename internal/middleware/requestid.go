package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/labs-polaris/Polaris-Back-Web/internal/types"
)

// RequestID propagates an inbound X-Request-Id or generates a fresh one, and
// echoes it on the response header. The envelope writer reads it back from
// the context.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(types.RequestIDHeader)

		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx.Set(types.ContextRequestIDKey, requestID)
		ctx.Header(types.RequestIDHeader, requestID)
		ctx.Next()
	}
}
