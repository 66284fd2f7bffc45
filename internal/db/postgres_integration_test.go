//go:build integration

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vidyodaya/vidyodaya-api/internal/config"
	"github.com/vidyodaya/vidyodaya-api/internal/db"
	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
	"github.com/vidyodaya/vidyodaya-api/internal/membership"
	"github.com/vidyodaya/vidyodaya-api/internal/patch"
	"github.com/vidyodaya/vidyodaya-api/internal/service"
	"github.com/vidyodaya/vidyodaya-api/internal/service/article"
	"github.com/vidyodaya/vidyodaya-api/internal/service/user"
)

func setupPostgres(t *testing.T) *config.Config {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("vidyodaya"),
		postgres.WithUsername("vidyodaya"),
		postgres.WithPassword("pwd"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return &config.Config{
		DB: config.DB{
			GormEngine: "postgres",
			Host:       host,
			Port:       port.Int(),
			User:       "vidyodaya",
			Password:   "pwd",
			Name:       "vidyodaya",
			Extras:     "sslmode=disable",
		},
	}
}

func TestPostgres_MembershipAndConflicts(t *testing.T) {
	ctx := context.Background()
	cfg := setupPostgres(t)

	gdb, err := db.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	r1 := models.Role{Name: "r1"}
	r2 := models.Role{Name: "r2"}
	require.NoError(t, gdb.Create(&r1).Error)
	require.NoError(t, gdb.Create(&r2).Error)

	users := user.New(gdb, membership.New())

	u, err := users.Create(ctx, user.NewUser{Username: "ada", Roles: []models.RoleRef{{ID: r1.ID}}})
	require.NoError(t, err)

	moved, err := users.Update(ctx, u.ID, models.UserPatch{Roles: patch.Some([]models.RoleRef{{ID: r2.ID}})})
	require.NoError(t, err)
	require.Len(t, moved.Roles, 1)
	assert.Equal(t, r2.ID, moved.Roles[0].ID)

	members, err := membership.New().Members(gdb, r1.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	articles := article.New(gdb)

	_, err = articles.Create(ctx, models.Article{Title: "A", Content: []byte("pdf")})
	require.NoError(t, err)

	_, err = articles.Create(ctx, models.Article{Title: "A"})
	require.ErrorIs(t, err, service.ErrConflict)
}
