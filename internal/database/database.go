package database

import (
	"fmt"

	"github.com/mx-space/docinsight/internal/config"
	"github.com/mx-space/docinsight/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured SQL database and optionally runs auto-migration.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.History.SQL.Driver, cfg.SQLDSN())
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(resolveLogLevel(cfg)),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if autoMigrate {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.New(mysql.Config{
			DSN:               dsn,
			DefaultStringSize: 191,
		}), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
}

func resolveLogLevel(cfg *config.AppConfig) logger.LogLevel {
	if cfg.IsDev() {
		return logger.Info
	}
	return logger.Warn
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.InsightRecord{}); err != nil {
		return err
	}

	if db.Dialector.Name() == "mysql" {
		if err := db.Exec("ALTER TABLE `insights` MODIFY COLUMN `text_excerpt` LONGTEXT NULL").Error; err != nil {
			return err
		}
		if err := db.Exec("ALTER TABLE `insights` MODIFY COLUMN `summary` LONGTEXT NULL").Error; err != nil {
			return err
		}
	}
	return nil
}
