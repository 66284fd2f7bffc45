// Package membership maintains the user/role association.
//
// The association is a set of (user id, role id) pairs stored in the
// user_roles table. User.Roles and Role.Users are read-only projections of
// that set, so every change made here is visible from both sides at once.
// Callers pass the transaction of the entity write that triggered the
// change; the manager never begins or commits a transaction itself.
package membership

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
	"github.com/vidyodaya/vidyodaya-api/internal/service"
)

// Change describes what Assign did to a user's membership.
type Change struct {
	UserID  uint64
	Added   []uint64
	Removed []uint64
}

// Empty reports whether the membership stayed the same.
func (c Change) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0
}

// Manager reconciles membership changes.
type Manager struct{}

// New creates a membership manager.
func New() *Manager {
	return &Manager{}
}

// Diff returns the role ids in requested but not in current (added) and in
// current but not in requested (removed). Duplicates collapse and both
// results are sorted.
func Diff(current, requested []uint64) (added, removed []uint64) {
	have := make(map[uint64]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}

	want := make(map[uint64]struct{}, len(requested))
	for _, id := range requested {
		want[id] = struct{}{}
	}

	for id := range want {
		if _, ok := have[id]; !ok {
			added = append(added, id)
		}
	}

	for id := range have {
		if _, ok := want[id]; !ok {
			removed = append(removed, id)
		}
	}

	slices.Sort(added)
	slices.Sort(removed)

	return added, removed
}

// Assign makes requested the exact role set of the user.
// Every requested role must exist. Write failures are reported as
// service.ErrConsistency and must abort the surrounding transaction.
func (m *Manager) Assign(tx *gorm.DB, userID uint64, requested []uint64) (Change, error) {
	change := Change{UserID: userID}

	if tx == nil {
		return change, service.ErrDBNil
	}

	if err := m.ensureRolesExist(tx, requested); err != nil {
		return change, err
	}

	current, err := m.RolesOf(tx, userID)
	if err != nil {
		return change, err
	}

	change.Added, change.Removed = Diff(current, requested)

	if len(change.Removed) > 0 {
		result := tx.Where("user_id = ? AND role_id IN ?", userID, change.Removed).Delete(&models.UserRole{})
		if result.Error != nil {
			return change, errors.Wrapf(service.ErrConsistency, "remove user %d from roles %v: %v",
				userID, change.Removed, result.Error)
		}

		if result.RowsAffected != int64(len(change.Removed)) {
			return change, errors.Wrapf(service.ErrConsistency, "remove user %d from roles %v: %d of %d pairs deleted",
				userID, change.Removed, result.RowsAffected, len(change.Removed))
		}
	}

	if len(change.Added) > 0 {
		pairs := make([]models.UserRole, 0, len(change.Added))
		for _, roleID := range change.Added {
			pairs = append(pairs, models.UserRole{UserID: userID, RoleID: roleID})
		}

		if err = tx.Create(&pairs).Error; err != nil {
			return change, errors.Wrapf(service.ErrConsistency, "add user %d to roles %v: %v",
				userID, change.Added, err)
		}
	}

	if !change.Empty() {
		log.Debug().
			Uint64("user", userID).
			Interface("added", change.Added).
			Interface("removed", change.Removed).
			Msg("user roles changed")
	}

	return change, nil
}

// RolesOf returns the sorted role ids of the user.
func (m *Manager) RolesOf(db *gorm.DB, userID uint64) ([]uint64, error) {
	var ids []uint64

	err := db.Model(&models.UserRole{}).
		Where("user_id = ?", userID).
		Order("role_id").
		Pluck("role_id", &ids).Error
	if err != nil {
		return nil, errors.Wrapf(err, "load roles of user %d", userID)
	}

	return ids, nil
}

// Members returns the sorted user ids of the role.
func (m *Manager) Members(db *gorm.DB, roleID uint64) ([]uint64, error) {
	var ids []uint64

	err := db.Model(&models.UserRole{}).
		Where("role_id = ?", roleID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, errors.Wrapf(err, "load members of role %d", roleID)
	}

	return ids, nil
}

func (m *Manager) ensureRolesExist(tx *gorm.DB, requested []uint64) error {
	if len(requested) == 0 {
		return nil
	}

	unique := slices.Clone(requested)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	var found []uint64
	if err := tx.Model(&models.Role{}).Where("id IN ?", unique).Pluck("id", &found).Error; err != nil {
		return errors.Wrap(err, "load requested roles")
	}

	if len(found) == len(unique) {
		return nil
	}

	for _, id := range unique {
		if !slices.Contains(found, id) {
			return errors.Wrapf(service.ErrNotFound, "role %d", id)
		}
	}

	return nil
}
