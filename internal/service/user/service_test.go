package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/db/dbtest"
	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
	"github.com/vidyodaya/vidyodaya-api/internal/membership"
	"github.com/vidyodaya/vidyodaya-api/internal/patch"
	"github.com/vidyodaya/vidyodaya-api/internal/service"
)

func createRoles(t *testing.T, db *gorm.DB, names ...string) []models.Role {
	t.Helper()

	roles := make([]models.Role, 0, len(names))

	for _, name := range names {
		role := models.Role{Name: name}
		require.NoError(t, db.Create(&role).Error)
		roles = append(roles, role)
	}

	return roles
}

func roleNames(roles []models.Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}

	return names
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	s := New(db, membership.New())
	roles := createRoles(t, db, "admin", "data")

	created, err := s.Create(ctx, NewUser{
		Username:     "ada",
		Password:     "s3cret!",
		PrimaryEmail: "ada@example.com",
		Roles:        []models.RoleRef{{ID: roles[0].ID}, {ID: roles[1].ID}},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.ElementsMatch(t, []string{"admin", "data"}, roleNames(created.Roles))
	assert.True(t, created.VerifyPassword("s3cret!"))

	members, err := membership.New().Members(db, roles[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []uint64{created.ID}, members)

	_, err = s.Create(ctx, NewUser{Username: "ada"})
	require.ErrorIs(t, err, service.ErrConflict)

	_, err = s.Create(ctx, NewUser{})
	require.ErrorIs(t, err, service.ErrValidation)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_Create_UnknownRoleRollsBack(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	s := New(db, nil)

	_, err := s.Create(ctx, NewUser{Username: "ada", Roles: []models.RoleRef{{ID: 404}}})
	require.ErrorIs(t, err, service.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count, "the user insert is rolled back with the failed membership")
}

func TestService_Update_MovesUserBetweenRoles(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	s := New(db, membership.New())
	roles := createRoles(t, db, "r1", "r2")

	u, err := s.Create(ctx, NewUser{Username: "ada", Roles: []models.RoleRef{{ID: roles[0].ID}}})
	require.NoError(t, err)

	updated, err := s.Update(ctx, u.ID, models.UserPatch{
		Roles: patch.Some([]models.RoleRef{{ID: roles[1].ID}}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, roleNames(updated.Roles))

	var r1, r2 models.Role
	require.NoError(t, db.Preload("Users").First(&r1, roles[0].ID).Error)
	require.NoError(t, db.Preload("Users").First(&r2, roles[1].ID).Error)

	assert.Empty(t, r1.Users)
	require.Len(t, r2.Users, 1)
	assert.Equal(t, u.ID, r2.Users[0].ID)
}

func TestService_Update_ProfileOnlyKeepsRoles(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	s := New(db, membership.New())
	roles := createRoles(t, db, "r1")

	u, err := s.Create(ctx, NewUser{
		Username:  "ada",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Roles:     []models.RoleRef{{ID: roles[0].ID}},
	})
	require.NoError(t, err)

	p := models.UserPatch{FirstName: patch.Some("Augusta")}

	updated, err := s.Update(ctx, u.ID, p)
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Equal(t, "ada", updated.Username)
	assert.Equal(t, []string{"r1"}, roleNames(updated.Roles))

	again, err := s.Update(ctx, u.ID, p)
	require.NoError(t, err)
	assert.Equal(t, updated.FirstName, again.FirstName)
	assert.Equal(t, roleNames(updated.Roles), roleNames(again.Roles))
}

func TestService_Update_EmptyRolesClearsMembership(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	s := New(db, membership.New())
	roles := createRoles(t, db, "r1")

	u, err := s.Create(ctx, NewUser{Username: "ada", Roles: []models.RoleRef{{ID: roles[0].ID}}})
	require.NoError(t, err)

	updated, err := s.Update(ctx, u.ID, models.UserPatch{Roles: patch.Some([]models.RoleRef{})})
	require.NoError(t, err)
	assert.Empty(t, updated.Roles)

	var r1 models.Role
	require.NoError(t, db.Preload("Users").First(&r1, roles[0].ID).Error)
	assert.Empty(t, r1.Users)
}

func TestService_Update_FailedMembershipRollsBackProfile(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	s := New(db, membership.New())
	roles := createRoles(t, db, "r1")

	u, err := s.Create(ctx, NewUser{Username: "ada", FirstName: "Ada", Roles: []models.RoleRef{{ID: roles[0].ID}}})
	require.NoError(t, err)

	_, err = s.Update(ctx, u.ID, models.UserPatch{
		FirstName: patch.Some("Augusta"),
		Roles:     patch.Some([]models.RoleRef{{ID: 404}}),
	})
	require.ErrorIs(t, err, service.ErrNotFound)

	stored, err := s.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", stored.FirstName)
	assert.Equal(t, []string{"r1"}, roleNames(stored.Roles))
}

func TestService_Update_Errors(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	s := New(db, membership.New())

	_, err := s.Create(ctx, NewUser{Username: "ada"})
	require.NoError(t, err)

	bob, err := s.Create(ctx, NewUser{Username: "bob"})
	require.NoError(t, err)

	_, err = s.Update(ctx, bob.ID, models.UserPatch{Username: patch.Some("ada")})
	require.ErrorIs(t, err, service.ErrConflict)

	_, err = s.Update(ctx, 999, models.UserPatch{})
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = s.FindByID(ctx, 999)
	require.ErrorIs(t, err, service.ErrNotFound)
}
