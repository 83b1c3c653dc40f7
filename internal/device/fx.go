package device

import (
	"github.com/enervue/enervue/internal/device/repository"
	"github.com/enervue/enervue/internal/device/service"
	"go.uber.org/fx"
)

var Module = fx.Module("device.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
