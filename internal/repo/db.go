package repo

import (
	"fmt"
	"log"

	"backoffice/internal/config"
	"backoffice/internal/model"
	"backoffice/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Open connects with the driver named in cfg. Postgres is the default.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	return gorm.Open(dialector, &gorm.Config{})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Operator{},
		&model.AuditLog{},
	)
}

func InitDB() {
	var err error
	DB, err = Open(config.GlobalConfig.Database)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database",
			zap.String("driver", config.GlobalConfig.Database.Driver),
			zap.Error(err),
		)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}
