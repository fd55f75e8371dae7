package markup

import (
	"github.com/smallbiznis/ratebook/internal/markup/service"
	"go.uber.org/fx"
)

var Module = fx.Module("markup.service",
	fx.Provide(service.NewService),
)
