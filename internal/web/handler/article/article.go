// Package article provides the HTTP handlers of the article resource.
package article

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/config"
	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
	articlesvc "github.com/vidyodaya/vidyodaya-api/internal/service/article"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler/view"
)

const (
	// Path is the path of the article route group.
	Path = "articles"
)

// createRequest is the body of an article create request.
type createRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"max=1024"`
	ImageURL    string `json:"imageUrl"    validate:"omitempty,url,max=1024"`
	Content     []byte `json:"content"`
}

// Service is the article handler service.
type Service struct {
	cfg       *config.Config
	articles  *articlesvc.Service
	validator *validator.Validate
}

var _ handler.Service = (*Service)(nil)

// Init initializes the article handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg
	s.articles = articlesvc.New(db)
	s.validator = handler.NewValidator()

	app.Route("/"+Path, func(router fiber.Router) {
		router.Get("/articles", s.List)
		router.Get("/article/name/:title", s.GetByName)
		router.Get("/article/:"+handler.IDParam, s.Get)
		router.Post("/article", s.Create)
		router.Put("/article/:"+handler.IDParam, s.Update)
	})

	return nil
}

// List returns every article.
func (s *Service) List(c *fiber.Ctx) error {
	articles, err := s.articles.FindAll(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(view.NewArticles(articles))
}

// Get returns the article with the id of the route.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	article, err := s.articles.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(view.NewArticle(*article))
}

// GetByName returns the article with the title of the route.
func (s *Service) GetByName(c *fiber.Ctx) error {
	title, err := url.PathUnescape(c.Params("title"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid article title")
	}

	article, err := s.articles.FindByName(c.UserContext(), title)
	if err != nil {
		return err
	}

	return c.JSON(view.NewArticle(*article))
}

// Create stores a new article and answers with its location.
func (s *Service) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := handler.ParseBody(c, s.validator, &req); err != nil {
		return err
	}

	article, err := s.articles.Create(c.UserContext(), models.Article{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Content:     req.Content,
	})
	if err != nil {
		return err
	}

	log.Info().Uint64("id", article.ID).Str("title", article.Title).Msg("article created")

	c.Location(handler.Location(c, article.ID))
	c.Status(fiber.StatusCreated)

	return nil
}

// Update merges the body into the stored article and returns the result.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParseID(c)
	if err != nil {
		return err
	}

	var p models.ArticlePatch
	if err = handler.ParseBody(c, s.validator, &p); err != nil {
		return err
	}

	article, err := s.articles.Update(c.UserContext(), id, p)
	if err != nil {
		return err
	}

	return c.JSON(view.NewArticle(*article))
}
