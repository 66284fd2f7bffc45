package handler

import (
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"

	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
	"github.com/vidyodaya/vidyodaya-api/internal/patch"
	"github.com/vidyodaya/vidyodaya-api/internal/service"
)

// NewValidator returns a validator that looks through patch values:
// absent fields validate as nil so omitempty skips them.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if p, ok := field.Interface().(patch.Value[string]); ok {
			if s, set := p.Get(); set {
				return s
			}
		}

		return nil
	}, patch.Value[string]{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if p, ok := field.Interface().(patch.Value[[]models.RoleRef]); ok {
			if refs, set := p.Get(); set {
				return refs
			}
		}

		return nil
	}, patch.Value[[]models.RoleRef]{})

	return v
}

// ParseID reads the id route parameter. Only positive integers are ids.
func ParseID(c *fiber.Ctx) (uint64, error) {
	raw := c.Params(IDParam)

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.Wrapf(service.ErrValidation, "invalid id %q", raw)
	}

	return id, nil
}

// ParseBody decodes the request body into out and validates it.
func ParseBody(c *fiber.Ctx, v *validator.Validate, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return pkgerrors.Wrapf(service.ErrValidation, "invalid body: %v", err)
	}

	if err := v.Struct(out); err != nil {
		return pkgerrors.Wrapf(service.ErrValidation, "%v", err)
	}

	return nil
}

// Location returns the url of the resource created at the current path.
func Location(c *fiber.Ctx, id uint64) string {
	return c.BaseURL() + c.Path() + "/" + strconv.FormatUint(id, 10)
}
