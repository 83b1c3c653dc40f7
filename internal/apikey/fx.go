package apikey

import (
	"github.com/enervue/enervue/internal/apikey/repository"
	"github.com/enervue/enervue/internal/apikey/service"
	"go.uber.org/fx"
)

var Module = fx.Module("apikey.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
