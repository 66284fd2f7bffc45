package models

import (
	"time"

	"github.com/vidyodaya/vidyodaya-api/internal/patch"
)

// WhereNameIs is the where clause to look up a role by its unique name.
const WhereNameIs = "name = ?"

// Role represents a named role users can be members of.
// Role is the non-owning side of the user/role association: its Users
// are a read-only projection of the user_roles pairs and are never written
// through a Role.
type Role struct {
	// ID is the store assigned identifier for the role.
	ID uint64 `gorm:"primaryKey"`
	// Name is the unique name of the role (e.g. "admin", "data").
	Name string `gorm:"unique;size:100;not null"`
	// Users is the membership view loaded from user_roles.
	Users []User `gorm:"many2many:user_roles"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}

// RolePatch is a partial role update. Membership is not part of it.
type RolePatch struct {
	Name patch.Value[string] `json:"name"`
}

// Update merges p into r. Only the name can change.
func (r *Role) Update(p RolePatch) {
	r.Name = patch.ReplaceNonZero(r.Name, p.Name)
}
