// Package user provides the user resource service.
// It is the only entry point for membership changes: role sets sent with a
// user are applied by the membership manager inside the user's transaction.
package user

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
	"github.com/vidyodaya/vidyodaya-api/internal/membership"
	"github.com/vidyodaya/vidyodaya-api/internal/service"
)

// NewUser is the payload for creating a user.
type NewUser struct {
	Username     string           `json:"username"     validate:"required,min=3,max=100"`
	Password     string           `json:"password"     validate:"omitempty,min=6,max=255"`
	PrimaryEmail string           `json:"primaryEmail" validate:"omitempty,email,max=255"`
	FirstName    string           `json:"firstName"    validate:"max=100"`
	LastName     string           `json:"lastName"     validate:"max=100"`
	Roles        []models.RoleRef `json:"roles"        validate:"dive"`
}

// Service provides access to users.
type Service struct {
	db      *gorm.DB
	members *membership.Manager
}

// New creates a user service working on db. Membership changes go through members.
func New(db *gorm.DB, members *membership.Manager) *Service {
	if members == nil {
		members = membership.New()
	}

	return &Service{db: db, members: members}
}

// FindAll returns every user with roles, ordered by id.
func (s *Service) FindAll(ctx context.Context) ([]models.User, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Preload("Roles").Order("id").Find(&users).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list users")
	}

	return users, nil
}

// FindByID returns the user with the given id.
func (s *Service) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	return byID(s.db.WithContext(ctx), id)
}

// Create stores a new user and its initial roles in one transaction.
func (s *Service) Create(ctx context.Context, in NewUser) (*models.User, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	if in.Username == "" {
		return nil, pkgerrors.Wrap(service.ErrValidation, "username is required")
	}

	user := &models.User{
		Username:     in.Username,
		PrimaryEmail: in.PrimaryEmail,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}

	if in.Password != "" {
		user.Password = models.HashPassword(in.Password)
	}

	roleIDs := make([]uint64, 0, len(in.Roles))
	for _, ref := range in.Roles {
		roleIDs = append(roleIDs, ref.ID)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUsernameFree(tx, user.Username, 0); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			if service.IsDuplicateKey(err) {
				return pkgerrors.Wrapf(service.ErrConflict, "user %q", user.Username)
			}

			return pkgerrors.Wrapf(err, "create user %q", user.Username)
		}

		if _, err := s.members.Assign(tx, user.ID, roleIDs); err != nil {
			return err
		}

		return reload(tx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Update merges p into the stored user. When p carries roles, they become
// the user's exact role set; both sides of the association change in the
// same transaction as the profile fields.
func (s *Service) Update(ctx context.Context, id uint64, p models.UserPatch) (*models.User, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	var user *models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		if user, err = byID(tx, id); err != nil {
			return err
		}

		previous := user.Username
		user.Update(p)

		if user.Username != previous {
			if err = ensureUsernameFree(tx, user.Username, user.ID); err != nil {
				return err
			}
		}

		if err = tx.Omit(clause.Associations).Save(user).Error; err != nil {
			if service.IsDuplicateKey(err) {
				return pkgerrors.Wrapf(service.ErrConflict, "user %q", user.Username)
			}

			return pkgerrors.Wrapf(err, "save user %d", id)
		}

		if roleIDs, ok := p.RoleIDs(); ok {
			change, err := s.members.Assign(tx, user.ID, roleIDs)
			if err != nil {
				return err
			}

			if !change.Empty() {
				log.Info().Uint64("user", user.ID).Msg("user roles updated")
			}
		}

		return reload(tx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func byID(db *gorm.DB, id uint64) (*models.User, error) {
	var user models.User

	if err := db.Preload("Roles").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrapf(service.ErrNotFound, "user %d", id)
		}

		return nil, pkgerrors.Wrapf(err, "load user %d", id)
	}

	return &user, nil
}

// reload refreshes the role view of user from user_roles.
func reload(tx *gorm.DB, user *models.User) error {
	fresh, err := byID(tx, user.ID)
	if err != nil {
		return err
	}

	*user = *fresh

	return nil
}

func ensureUsernameFree(tx *gorm.DB, username string, exceptID uint64) error {
	var count int64

	err := tx.Model(&models.User{}).
		Where(models.WhereUsernameIs, username).
		Where("id <> ?", exceptID).
		Count(&count).Error
	if err != nil {
		return pkgerrors.Wrapf(err, "check username %q", username)
	}

	if count > 0 {
		return pkgerrors.Wrapf(service.ErrConflict, "user %q already exists", username)
	}

	return nil
}
