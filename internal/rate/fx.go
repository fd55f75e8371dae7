package rate

import (
	"github.com/smallbiznis/ratebook/internal/rate/ratecache"
	"github.com/smallbiznis/ratebook/internal/rate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rate.service",
	fx.Provide(ratecache.New),
	fx.Provide(service.NewService),
)
