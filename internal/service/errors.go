// Package service holds the error taxonomy shared by the resource services.
// Services wrap these sentinels with context; the web layer maps them to
// status codes with errors.Is.
package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested id or name does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("conflict")

	// ErrValidation is returned when a payload is missing a required field or is malformed.
	ErrValidation = errors.New("validation failed")

	// ErrConsistency is returned when a relationship write could not complete on both sides.
	ErrConsistency = errors.New("relationship consistency failure")

	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// IsDuplicateKey reports whether err is a unique constraint violation.
// gorm translates it for dialects implementing ErrorTranslator; the
// message check covers the rest.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
