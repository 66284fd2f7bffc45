// Package role provides the role resource service.
//
// A role's membership can not be changed here: the role is the non-owning
// side of the user/role association and membership is only edited through
// the user service.
package role

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
	"github.com/vidyodaya/vidyodaya-api/internal/service"
)

// Service provides access to roles.
type Service struct {
	db *gorm.DB
}

// New creates a role service working on db.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// FindAll returns every role with its members, ordered by id.
func (s *Service) FindAll(ctx context.Context) ([]models.Role, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	var roles []models.Role
	if err := s.db.WithContext(ctx).Preload("Users").Order("id").Find(&roles).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list roles")
	}

	return roles, nil
}

// FindByID returns the role with the given id.
func (s *Service) FindByID(ctx context.Context, id uint64) (*models.Role, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	return byID(s.db.WithContext(ctx), id)
}

// FindByName returns the role with the given name.
func (s *Service) FindByName(ctx context.Context, name string) (*models.Role, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	var role models.Role

	err := s.db.WithContext(ctx).Preload("Users").Where(models.WhereNameIs, name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrapf(service.ErrNotFound, "role %q", name)
		}

		return nil, pkgerrors.Wrapf(err, "load role %q", name)
	}

	return &role, nil
}

// Create stores a new role. Any client supplied id or users are ignored.
func (s *Service) Create(ctx context.Context, name string) (*models.Role, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	if name == "" {
		return nil, pkgerrors.Wrap(service.ErrValidation, "role name is required")
	}

	role := &models.Role{Name: name}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureNameFree(tx, name, 0); err != nil {
			return err
		}

		return create(tx, role)
	})
	if err != nil {
		return nil, err
	}

	role.Users = []models.User{}

	return role, nil
}

// Update merges p into the stored role. Only the name changes; the
// membership of the role is left untouched.
func (s *Service) Update(ctx context.Context, id uint64, p models.RolePatch) (*models.Role, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	var role *models.Role

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		if role, err = byID(tx, id); err != nil {
			return err
		}

		previous := role.Name
		role.Update(p)

		if role.Name != previous {
			if err = ensureNameFree(tx, role.Name, role.ID); err != nil {
				return err
			}
		}

		if err = tx.Omit(clause.Associations).Save(role).Error; err != nil {
			if service.IsDuplicateKey(err) {
				return pkgerrors.Wrapf(service.ErrConflict, "role %q", role.Name)
			}

			return pkgerrors.Wrapf(err, "save role %d", id)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return role, nil
}

func byID(db *gorm.DB, id uint64) (*models.Role, error) {
	var role models.Role

	if err := db.Preload("Users").First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrapf(service.ErrNotFound, "role %d", id)
		}

		return nil, pkgerrors.Wrapf(err, "load role %d", id)
	}

	return &role, nil
}

func ensureNameFree(tx *gorm.DB, name string, exceptID uint64) error {
	var count int64

	err := tx.Model(&models.Role{}).Where(models.WhereNameIs, name).Where("id <> ?", exceptID).Count(&count).Error
	if err != nil {
		return pkgerrors.Wrapf(err, "check role name %q", name)
	}

	if count > 0 {
		return pkgerrors.Wrapf(service.ErrConflict, "role %q already exists", name)
	}

	return nil
}

func create(tx *gorm.DB, role *models.Role) error {
	if err := tx.Omit(clause.Associations).Create(role).Error; err != nil {
		if service.IsDuplicateKey(err) {
			return pkgerrors.Wrapf(service.ErrConflict, "role %q", role.Name)
		}

		return pkgerrors.Wrapf(err, "create role %q", role.Name)
	}

	return nil
}
