package database

import (
	"github.com/justsurfingit/career-compass/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the Postgres connection and runs migrations. The DSN comes
// from configuration rather than being hardcoded here.
func Connect(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	log.Info("database connection established")

	// Migration: this creates the tables in Postgres automatically
	log.Info("running migrations")
	if err := db.AutoMigrate(&models.User{}, &models.Job{}); err != nil {
		return nil, err
	}
	return db, nil
}
