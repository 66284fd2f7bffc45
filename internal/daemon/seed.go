package daemon

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/config"
	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
	"github.com/vidyodaya/vidyodaya-api/internal/membership"
	"github.com/vidyodaya/vidyodaya-api/internal/service"
	rolesvc "github.com/vidyodaya/vidyodaya-api/internal/service/role"
	usersvc "github.com/vidyodaya/vidyodaya-api/internal/service/user"
	"github.com/vidyodaya/vidyodaya-api/internal/uniuri"
)

const (
	adminUsername = "admin"
	adminRole     = "admin"
)

// seed creates the configured roles and an admin user when the users table is empty.
func seed(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if !cfg.Seed.Enabled {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return pkgerrors.Wrap(err, "failed to count users")
	}

	if count > 0 {
		return nil
	}

	roles := rolesvc.New(db)

	var adminRoles []models.RoleRef

	for _, name := range cfg.Seed.Roles {
		role, err := roles.FindByName(ctx, name)
		if errors.Is(err, service.ErrNotFound) {
			role, err = roles.Create(ctx, name)
		}

		if err != nil {
			return pkgerrors.Wrapf(err, "failed to seed role %q", name)
		}

		if name == adminRole {
			adminRoles = append(adminRoles, models.RoleRef{ID: role.ID})
		}
	}

	password := cfg.Seed.AdminPassword
	if password == "" {
		password = uniuri.New()

		log.Warn().Str("username", adminUsername).Str("password", password).
			Msg("no admin password configured, generated one; change it after the first login")
	}

	admin, err := usersvc.New(db, membership.New()).Create(ctx, usersvc.NewUser{
		Username: adminUsername,
		Password: password,
		Roles:    adminRoles,
	})
	if err != nil {
		return pkgerrors.Wrap(err, "failed to seed admin user")
	}

	log.Info().
		Uint64("id", admin.ID).
		Strs("roles", cfg.Seed.Roles).
		Msg("seeded roles and admin user")

	return nil
}
