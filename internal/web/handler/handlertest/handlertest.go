// Package handlertest wires handler services to a fiber app backed by an
// in-memory database for tests.
package handlertest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/config"
	"github.com/vidyodaya/vidyodaya-api/internal/db/dbtest"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler"
)

// New returns an app with the API error handler and services initialized
// on a fresh database.
func New(t *testing.T, services ...handler.Service) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := dbtest.New(t)
	app := fiber.New(fiber.Config{ErrorHandler: handler.ErrorHandler})
	cfg := &config.Config{Webserver: config.Webserver{URL: "http://localhost"}}

	for _, s := range services {
		require.NoError(t, s.Init(app, cfg, db))
	}

	return app, db
}

// Do sends a request with an optional JSON body and returns the response
// and its body.
func Do(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

// Decode unmarshals a JSON body into out.
func Decode(t *testing.T, raw []byte, out interface{}) {
	t.Helper()

	require.NoError(t, json.Unmarshal(raw, out), string(raw))
}
