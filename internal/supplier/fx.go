package supplier

import (
	"github.com/smallbiznis/ratebook/internal/supplier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("supplier.service",
	fx.Provide(service.NewService),
)
