package migration

import (
	"github.com/amir-akbari361/khuchi/internal/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Module applies schema migrations on startup. Only the postgres dialect
// carries the stored functions and triggers; other dialects (tests) set
// up their own schema.
var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType != "postgres" {
			return nil
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
