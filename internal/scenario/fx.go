package scenario

import (
	"github.com/enervue/enervue/internal/scenario/service"
	"go.uber.org/fx"
)

var Module = fx.Module("scenario.service",
	fx.Provide(service.New),
)
