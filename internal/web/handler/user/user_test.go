package user

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler/handlertest"
	rolehandler "github.com/vidyodaya/vidyodaya-api/internal/web/handler/role"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler/view"
)

func pathOf(t *testing.T, location string) string {
	t.Helper()

	i := strings.Index(location, "/users/")
	require.GreaterOrEqual(t, i, 0, location)

	return location[i:]
}

func TestCreateAndFetch(t *testing.T) {
	app, db := handlertest.New(t, &Service{})

	role := models.Role{Name: "admin"}
	require.NoError(t, db.Create(&role).Error)

	payload := fmt.Sprintf(
		`{"username":"ada","password":"s3cret!","primaryEmail":"ada@example.com","firstName":"Ada","roles":[{"id":%d}]}`,
		role.ID,
	)

	resp, body := handlertest.Do(t, app, http.MethodPost, "/users/user", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))

	target := pathOf(t, resp.Header.Get(fiber.HeaderLocation))

	resp, body = handlertest.Do(t, app, http.MethodGet, target, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "password")

	var got view.User
	handlertest.Decode(t, body, &got)
	assert.Equal(t, "ada", got.Username)
	assert.Equal(t, "ada@example.com", got.PrimaryEmail)
	assert.Equal(t, []view.RoleRef{{ID: role.ID, Name: "admin"}}, got.Roles)

	resp, body = handlertest.Do(t, app, http.MethodGet, "/users/users", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var all []view.User
	handlertest.Decode(t, body, &all)
	assert.Len(t, all, 1)
}

func TestUpdate_MovesUserBetweenRoles(t *testing.T) {
	app, db := handlertest.New(t, &Service{}, &rolehandler.Service{})

	r1 := models.Role{Name: "r1"}
	r2 := models.Role{Name: "r2"}
	require.NoError(t, db.Create(&r1).Error)
	require.NoError(t, db.Create(&r2).Error)

	resp, body := handlertest.Do(t, app, http.MethodPost, "/users/user",
		fmt.Sprintf(`{"username":"ada","firstName":"Ada","roles":[{"id":%d}]}`, r1.ID))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))

	target := pathOf(t, resp.Header.Get(fiber.HeaderLocation))

	resp, body = handlertest.Do(t, app, http.MethodPut, target, fmt.Sprintf(`{"roles":[{"id":%d}]}`, r2.ID))
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	var updated view.User
	handlertest.Decode(t, body, &updated)
	assert.Equal(t, "Ada", updated.FirstName, "fields missing from the body are kept")
	assert.Equal(t, []view.RoleRef{{ID: r2.ID, Name: "r2"}}, updated.Roles)

	var role view.Role

	resp, body = handlertest.Do(t, app, http.MethodGet, "/roles/role/"+strconv.FormatUint(r1.ID, 10), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	handlertest.Decode(t, body, &role)
	assert.Empty(t, role.Users)

	resp, body = handlertest.Do(t, app, http.MethodGet, "/roles/role/"+strconv.FormatUint(r2.ID, 10), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	handlertest.Decode(t, body, &role)
	assert.Equal(t, []view.UserRef{{ID: updated.ID, Username: "ada"}}, role.Users)
}

func TestUpdate_PartialBody(t *testing.T) {
	app, _ := handlertest.New(t, &Service{})

	resp, _ := handlertest.Do(t, app, http.MethodPost, "/users/user",
		`{"username":"ada","firstName":"Ada","lastName":"Lovelace","primaryEmail":"ada@example.com"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	target := pathOf(t, resp.Header.Get(fiber.HeaderLocation))

	resp, body := handlertest.Do(t, app, http.MethodPut, target, `{"lastName":"King","username":null,"id":77}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	var got view.User
	handlertest.Decode(t, body, &got)
	assert.Equal(t, "ada", got.Username)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "King", got.LastName)
	assert.Equal(t, "ada@example.com", got.PrimaryEmail)
	assert.NotEqual(t, uint64(77), got.ID)
	assert.Equal(t, []view.RoleRef{}, got.Roles)
}

func TestErrors(t *testing.T) {
	app, _ := handlertest.New(t, &Service{})

	resp, _ := handlertest.Do(t, app, http.MethodPost, "/users/user", `{"username":"ada"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	target := pathOf(t, resp.Header.Get(fiber.HeaderLocation))

	testCases := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{name: "bad id", method: http.MethodGet, target: "/users/user/x", wantStatus: fiber.StatusBadRequest},
		{name: "missing user", method: http.MethodGet, target: "/users/user/999", wantStatus: fiber.StatusNotFound},
		{name: "duplicate username", method: http.MethodPost, target: "/users/user", body: `{"username":"ada"}`, wantStatus: fiber.StatusConflict},
		{name: "missing username", method: http.MethodPost, target: "/users/user", body: `{"firstName":"Ada"}`, wantStatus: fiber.StatusBadRequest},
		{name: "invalid email", method: http.MethodPost, target: "/users/user", body: `{"username":"bob","primaryEmail":"nope"}`, wantStatus: fiber.StatusBadRequest},
		{name: "unknown role", method: http.MethodPost, target: "/users/user", body: `{"username":"bob","roles":[{"id":404}]}`, wantStatus: fiber.StatusNotFound},
		{name: "role without id", method: http.MethodPut, target: target, body: `{"roles":[{}]}`, wantStatus: fiber.StatusBadRequest},
		{name: "update unknown role", method: http.MethodPut, target: target, body: `{"roles":[{"id":404}]}`, wantStatus: fiber.StatusNotFound},
		{name: "update missing user", method: http.MethodPut, target: "/users/user/999", body: `{}`, wantStatus: fiber.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := handlertest.Do(t, app, tc.method, tc.target, tc.body)
			assert.Equal(t, tc.wantStatus, resp.StatusCode, string(body))
		})
	}
}
