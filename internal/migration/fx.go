package migration

import (
	"github.com/enervue/enervue/internal/config"
	"github.com/enervue/enervue/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// The embedded migrations are written for postgres. Other dialects
		// (sqlite in local dev) are migrated by their own tooling or tests.
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}

			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		}

		if cfg.SeedDemoData {
			return seed.EnsureDemoData(conn)
		}
		return nil
	}),
)
