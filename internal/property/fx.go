package property

import (
	"github.com/enervue/enervue/internal/property/repository"
	"github.com/enervue/enervue/internal/property/service"
	"go.uber.org/fx"
)

var Module = fx.Module("property.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
