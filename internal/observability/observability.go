package observability

import (
	"github.com/smallbiznis/ratebook/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Module = fx.Module("observability",
	fx.Provide(NewLogger),
)

// NewLogger builds the process-wide zap logger. Services derive named
// children from it.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg != nil && cfg.LogLevel != "" {
		if err := level.Set(cfg.LogLevel); err != nil {
			return nil, err
		}
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	return zc.Build()
}
