package reading

import (
	"github.com/enervue/enervue/internal/reading/repository"
	"github.com/enervue/enervue/internal/reading/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reading.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
