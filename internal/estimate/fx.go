package estimate

import (
	"github.com/enervue/enervue/internal/estimate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("estimate.service",
	fx.Provide(service.New),
)
