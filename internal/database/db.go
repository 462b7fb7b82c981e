package database

import (
	"fmt"
	"time"

	"csirt-registry/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxAttempts  = 10
	attemptDelay = 2 * time.Second
)

// Open подключается к Postgres, повторяя попытки пока база поднимается.
func Open(dsn string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	for i := 1; i <= maxAttempts; i++ {
		logrus.Infof("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			logrus.Info("connected to DB successfully")
			return db, nil
		}

		logrus.WithError(err).Warn("failed to connect to DB")
		time.Sleep(attemptDelay)
	}

	return nil, fmt.Errorf("failed to connect to db after %d attempts: %w", maxAttempts, err)
}

// Migrate создаёт таблицы. На управляемой базе схема обычно уже есть,
// поэтому вызывается только при DB_AUTO_MIGRATE.
func Migrate(db *gorm.DB, withLocalAuth bool) error {
	tables := []interface{}{
		&models.Company{},
		&models.Profile{},
		&models.Designation{},
		&models.NetworkConfiguration{},
		&models.Incident{},
		&models.Notification{},
	}
	if withLocalAuth {
		tables = append(tables, &models.AuthAccount{}, &models.RefreshToken{})
	}
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
