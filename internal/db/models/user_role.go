package models

import "time"

// UserRole is one (user, role) pair of the user/role association.
// The user_roles table is the single source of truth for membership;
// User.Roles and Role.Users are both projections of it.
type UserRole struct {
	// UserID is the ID of the member.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// RoleID is the ID of the role.
	RoleID uint64 `gorm:"primaryKey;column:role_id"`
	// CreatedAt is the timestamp when the user was added to the role (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the UserRole model.
func (UserRole) TableName() string {
	return "user_roles"
}
