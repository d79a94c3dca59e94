package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/types"
	"go.uber.org/zap"
)

// AccessLog writes one structured line per request, carrying the request id
// so log entries correlate with response envelopes.
func AccessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		logger.Info("request",
			zap.String("request_id", ctx.GetString(types.ContextRequestIDKey)),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
