// Package role provides the HTTP handlers of the role resource.
package role

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/config"
	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
	rolesvc "github.com/vidyodaya/vidyodaya-api/internal/service/role"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler/view"
)

const (
	// Path is the path of the role route group.
	Path = "roles"
)

// createRequest is the body of a role create request.
type createRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Service is the role handler service.
type Service struct {
	cfg       *config.Config
	roles     *rolesvc.Service
	validator *validator.Validate
}

var _ handler.Service = (*Service)(nil)

// Init initializes the role handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.roles = rolesvc.New(db)
	s.validator = handler.NewValidator()

	app.Route("/"+Path, func(router fiber.Router) {
		router.Get("/roles", s.List)
		router.Get("/role/name/:name", s.GetByName)
		router.Get("/role/:"+handler.IDParam, s.Get)
		router.Post("/role", s.Create)
		router.Put("/role/:"+handler.IDParam, s.Update)
	})

	return nil
}

// List returns every role.
func (s *Service) List(c *fiber.Ctx) error {
	roles, err := s.roles.FindAll(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(view.NewRoles(roles))
}

// Get returns the role with the id of the route.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	role, err := s.roles.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(view.NewRole(*role))
}

// GetByName returns the role with the name of the route.
func (s *Service) GetByName(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid role name")
	}

	role, err := s.roles.FindByName(c.UserContext(), name)
	if err != nil {
		return err
	}

	return c.JSON(view.NewRole(*role))
}

// Create stores a new role and answers with its location.
func (s *Service) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := handler.ParseBody(c, s.validator, &req); err != nil {
		return err
	}

	role, err := s.roles.Create(c.UserContext(), req.Name)
	if err != nil {
		return err
	}

	log.Info().Uint64("id", role.ID).Str("name", role.Name).Msg("role created")

	c.Location(handler.Location(c, role.ID))
	c.Status(fiber.StatusCreated)

	return nil
}

// Update merges the body into the stored role. The response has no body.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	var p models.RolePatch
	if err = handler.ParseBody(c, s.validator, &p); err != nil {
		return err
	}

	if _, err = s.roles.Update(c.UserContext(), id, p); err != nil {
		return err
	}

	c.Status(fiber.StatusOK)

	return nil
}
