package migration

import (
	billdomain "github.com/smallbiznis/ratebook/internal/bill/domain"
	ledgerdomain "github.com/smallbiznis/ratebook/internal/ledger/domain"
	markupdomain "github.com/smallbiznis/ratebook/internal/markup/domain"
	ratedomain "github.com/smallbiznis/ratebook/internal/rate/domain"
	supplierdomain "github.com/smallbiznis/ratebook/internal/supplier/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(RunMigrations),
)

// RunMigrations brings the schema up to date for every persisted model.
func RunMigrations(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&supplierdomain.Supplier{},
		&markupdomain.Rule{},
		&ratedomain.DailyRate{},
		&billdomain.Entry{},
		&ledgerdomain.Transaction{},
	)
}
