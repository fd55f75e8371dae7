package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/ratebook/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormprom "gorm.io/plugin/prometheus"
)

var Module = fx.Module("db",
	fx.Provide(Open),
)

type Param struct {
	fx.In

	Config *config.Config
	Log    *zap.Logger
}

// Open connects gorm using the configured driver and instruments the
// connection with tracing and prometheus collectors.
func Open(p Param) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch p.Config.DBDriver {
	case "postgres":
		dialector = postgres.Open(p.Config.DBDSN)
	case "sqlite":
		dialector = sqlite.Open(p.Config.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", p.Config.DBDriver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := conn.Use(otelgorm.NewPlugin()); err != nil {
		return nil, fmt.Errorf("install otel plugin: %w", err)
	}
	if err := conn.Use(gormprom.New(gormprom.Config{
		DBName:          "ratebook",
		RefreshInterval: 15,
	})); err != nil {
		p.Log.Warn("prometheus db collector unavailable", zap.Error(err))
	}

	return conn, nil
}
