package middlewares

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes one access log entry per request using the global logger.
// Server errors are logged at error level, client errors at warn.
func Logger() gin.HandlerFunc {
	return ginzap.GinzapWithConfig(zap.S().Named("http").Desugar(), &ginzap.Config{
		TimeFormat:   time.RFC3339,
		UTC:          true,
		SkipPaths:    []string{"/api/v1/configuration/status"},
		DefaultLevel: zapcore.InfoLevel,
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{zap.Int("size", c.Writer.Size())}
		},
	})
}
