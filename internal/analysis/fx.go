package analysis

import (
	"github.com/enervue/enervue/internal/analysis/service"
	"go.uber.org/fx"
)

var Module = fx.Module("analysis.service",
	fx.Provide(service.New),
)
