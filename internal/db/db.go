// Package db opens the gorm connection and migrates the schema.
package db

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/config"
	"github.com/vidyodaya/vidyodaya-api/internal/db/dsn"
	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
)

// Open connects to the database configured in cfg.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dsn.Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, NewGormConfig())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	return db, nil
}

// NewGormConfig returns the gorm settings shared by the daemon and tests.
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
	}
}

// Migrate registers the user_roles join model for both sides of the
// association and migrates all tables.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.User{}, "Roles", &models.UserRole{}); err != nil {
		return errors.Wrap(err, "failed to setup user roles join table")
	}

	if err := db.SetupJoinTable(&models.Role{}, "Users", &models.UserRole{}); err != nil {
		return errors.Wrap(err, "failed to setup role users join table")
	}

	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.UserRole{},
		&models.Article{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}
