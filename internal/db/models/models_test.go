package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyodaya/vidyodaya-api/internal/patch"
)

func TestRole_Update(t *testing.T) {
	members := []User{{ID: 4, Username: "ada"}}

	testCases := []struct {
		name     string
		patch    RolePatch
		wantName string
	}{
		{"absent name keeps name", RolePatch{}, "admin"},
		{"empty name keeps name", RolePatch{Name: patch.Some("")}, "admin"},
		{"new name replaces", RolePatch{Name: patch.Some("root")}, "root"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			role := Role{ID: 3, Name: "admin", Users: members}

			role.Update(tc.patch)

			assert.Equal(t, uint64(3), role.ID)
			assert.Equal(t, tc.wantName, role.Name)
			assert.Equal(t, members, role.Users)
		})
	}
}

func TestRole_Update_IgnoresIdentityAndUsers(t *testing.T) {
	var p RolePatch

	body := `{"id": 99, "roleid": 99, "name": "x", "users": [{"id": 1}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	role := Role{ID: 3, Name: "admin"}
	role.Update(p)

	assert.Equal(t, uint64(3), role.ID)
	assert.Equal(t, "x", role.Name)
	assert.Empty(t, role.Users)
}

func TestArticle_Update(t *testing.T) {
	base := func() Article {
		return Article{
			ID:          1,
			Title:       "A",
			Description: "d",
			ImageURL:    "http://img",
			Content:     []byte("pdf"),
		}
	}

	testCases := []struct {
		name  string
		patch ArticlePatch
		want  Article
	}{
		{
			name:  "empty patch changes nothing",
			patch: ArticlePatch{},
			want:  base(),
		},
		{
			name:  "title only",
			patch: ArticlePatch{Title: patch.Some("B")},
			want: Article{
				ID: 1, Title: "B", Description: "d", ImageURL: "http://img", Content: []byte("pdf"),
			},
		},
		{
			name:  "empty title is ignored",
			patch: ArticlePatch{Title: patch.Some("")},
			want:  base(),
		},
		{
			name:  "description cleared, content replaced",
			patch: ArticlePatch{Description: patch.Some(""), Content: patch.Some([]byte("v2"))},
			want: Article{
				ID: 1, Title: "A", Description: "", ImageURL: "http://img", Content: []byte("v2"),
			},
		},
		{
			name:  "empty content is ignored",
			patch: ArticlePatch{Content: patch.Some([]byte{})},
			want:  base(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := base()

			a.Update(tc.patch)
			assert.Equal(t, tc.want, a)

			// applying the same patch again is a no-op
			a.Update(tc.patch)
			assert.Equal(t, tc.want, a)
		})
	}
}

func TestUser_Update(t *testing.T) {
	u := User{
		ID:           7,
		Username:     "ada",
		PrimaryEmail: "ada@example.com",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Roles:        []Role{{ID: 1, Name: "admin"}},
	}

	u.Update(UserPatch{
		FirstName: patch.Some("Augusta"),
		Roles:     patch.Some([]RoleRef{{ID: 2}}),
	})

	assert.Equal(t, uint64(7), u.ID)
	assert.Equal(t, "ada", u.Username)
	assert.Equal(t, "ada@example.com", u.PrimaryEmail)
	assert.Equal(t, "Augusta", u.FirstName)
	assert.Equal(t, "Lovelace", u.LastName)
	assert.Equal(t, []Role{{ID: 1, Name: "admin"}}, u.Roles, "roles are reconciled by the membership manager")
}

func TestUser_Update_Password(t *testing.T) {
	u := User{Username: "ada"}

	u.Update(UserPatch{Password: patch.Some("s3cret!")})
	require.NotEmpty(t, u.Password)
	assert.True(t, u.VerifyPassword("s3cret!"))
	assert.False(t, u.VerifyPassword("wrong"))

	hashed := u.Password
	u.Update(UserPatch{})
	assert.Equal(t, hashed, u.Password)
}

func TestUserPatch_RoleIDs(t *testing.T) {
	ids, ok := UserPatch{}.RoleIDs()
	assert.False(t, ok)
	assert.Nil(t, ids)

	ids, ok = UserPatch{Roles: patch.Some([]RoleRef{})}.RoleIDs()
	assert.True(t, ok)
	assert.Empty(t, ids)

	ids, ok = UserPatch{Roles: patch.Some([]RoleRef{{ID: 2}, {ID: 5}})}.RoleIDs()
	assert.True(t, ok)
	assert.Equal(t, []uint64{2, 5}, ids)
}
