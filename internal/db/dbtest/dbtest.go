// Package dbtest provides a migrated in-memory SQLite database for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/db"
)

// New creates an in-memory SQLite database with the full schema.
// The pool is limited to one connection: every connection to ":memory:"
// opens its own empty database.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.NewGormConfig())
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, db.Migrate(gdb), "failed to migrate test database")

	return gdb
}
