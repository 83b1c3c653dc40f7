package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/enervue/enervue/internal/config"
	"github.com/enervue/enervue/internal/migration"
	"github.com/enervue/enervue/internal/observability"
	"github.com/enervue/enervue/internal/server"
	"github.com/enervue/enervue/pkg/db"
)

func main() {
	app := fx.New(
		fx.Provide(config.Load),
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
