// Package models contains database model definitions.
package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"

	"github.com/vidyodaya/vidyodaya-api/internal/patch"
)

// WhereUsernameIs is the where clause to look up a user by username.
const WhereUsernameIs = "username = ?"

// User represents a user account.
// User is the owning side of the user/role association; membership changes
// are made through the membership manager, never by saving Roles directly.
type User struct {
	// ID is the store assigned identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Username is the unique username.
	Username string `gorm:"unique;size:100;not null"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255"`
	// PrimaryEmail is the user's email address.
	PrimaryEmail string `gorm:"size:255"`
	// FirstName is the user's first or given name.
	FirstName string `gorm:"size:100"`
	// LastName is the user's last or family name.
	LastName string `gorm:"size:100"`
	// Roles is the role view loaded from user_roles.
	Roles []Role `gorm:"many2many:user_roles"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// RoleRef references a role by id inside a user payload.
type RoleRef struct {
	ID uint64 `json:"id" validate:"required"`
}

// UserPatch is a partial user update.
// Roles is not merged by Update; when present it replaces the user's
// membership set through the membership manager.
type UserPatch struct {
	Username     patch.Value[string]    `json:"username"     validate:"omitempty,min=3,max=100"`
	Password     patch.Value[string]    `json:"password"     validate:"omitempty,min=6,max=255"`
	PrimaryEmail patch.Value[string]    `json:"primaryEmail" validate:"omitempty,email,max=255"`
	FirstName    patch.Value[string]    `json:"firstName"    validate:"omitempty,max=100"`
	LastName     patch.Value[string]    `json:"lastName"     validate:"omitempty,max=100"`
	Roles        patch.Value[[]RoleRef] `json:"roles"        validate:"omitempty,dive"`
}

// Update merges p into u field by field. A present password is hashed.
func (u *User) Update(p UserPatch) {
	u.Username = patch.ReplaceNonZero(u.Username, p.Username)
	u.PrimaryEmail = patch.Replace(u.PrimaryEmail, p.PrimaryEmail)
	u.FirstName = patch.Replace(u.FirstName, p.FirstName)
	u.LastName = patch.Replace(u.LastName, p.LastName)

	if password, ok := p.Password.Get(); ok && password != "" {
		u.Password = HashPassword(password)
	}
}

// RoleIDs returns the ids of the referenced roles, or nil and false when
// the patch leaves membership unchanged.
func (p UserPatch) RoleIDs() ([]uint64, bool) {
	refs, ok := p.Roles.Get()
	if !ok {
		return nil, false
	}

	ids := make([]uint64, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}

	return ids, true
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
