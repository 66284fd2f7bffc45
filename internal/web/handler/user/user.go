// Package user provides the HTTP handlers of the user resource.
package user

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/config"
	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
	"github.com/vidyodaya/vidyodaya-api/internal/membership"
	usersvc "github.com/vidyodaya/vidyodaya-api/internal/service/user"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler/view"
)

const (
	// Path is the path of the user route group.
	Path = "users"
)

// Service is the user handler service.
type Service struct {
	cfg       *config.Config
	users     *usersvc.Service
	validator *validator.Validate
}

var _ handler.Service = (*Service)(nil)

// Init initializes the user handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.users = usersvc.New(db, membership.New())
	s.validator = handler.NewValidator()

	app.Route("/"+Path, func(router fiber.Router) {
		router.Get("/users", s.List)
		router.Get("/user/:"+handler.IDParam, s.Get)
		router.Post("/user", s.Create)
		router.Put("/user/:"+handler.IDParam, s.Update)
	})

	return nil
}

// List returns every user.
func (s *Service) List(c *fiber.Ctx) error {
	users, err := s.users.FindAll(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(view.NewUsers(users))
}

// Get returns the user with the id of the route.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(view.NewUser(*user))
}

// Create stores a new user with its roles and answers with its location.
func (s *Service) Create(c *fiber.Ctx) error {
	var req usersvc.NewUser
	if err := handler.ParseBody(c, s.validator, &req); err != nil {
		return err
	}

	user, err := s.users.Create(c.UserContext(), req)
	if err != nil {
		return err
	}

	log.Info().Uint64("id", user.ID).Str("username", user.Username).Msg("user created")

	c.Location(handler.Location(c, user.ID))
	c.Status(fiber.StatusCreated)

	return nil
}

// Update merges the body into the stored user and returns the result.
// A roles list in the body replaces the user's memberships.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	var p models.UserPatch
	if err = handler.ParseBody(c, s.validator, &p); err != nil {
		return err
	}

	user, err := s.users.Update(c.UserContext(), id, p)
	if err != nil {
		return err
	}

	return c.JSON(view.NewUser(*user))
}
