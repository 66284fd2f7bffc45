// Package article provides the article resource service.
package article

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
	"github.com/vidyodaya/vidyodaya-api/internal/service"
)

// Service provides access to articles.
type Service struct {
	db *gorm.DB
}

// New creates an article service working on db.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// FindAll returns every article ordered by id.
func (s *Service) FindAll(ctx context.Context) ([]models.Article, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	var articles []models.Article
	if err := s.db.WithContext(ctx).Order("id").Find(&articles).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list articles")
	}

	return articles, nil
}

// FindByID returns the article with the given id.
func (s *Service) FindByID(ctx context.Context, id uint64) (*models.Article, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	return byID(s.db.WithContext(ctx), id)
}

// FindByName returns the article with the given title.
func (s *Service) FindByName(ctx context.Context, title string) (*models.Article, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	var article models.Article

	if err := s.db.WithContext(ctx).Where(models.WhereTitleIs, title).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrapf(service.ErrNotFound, "article %q", title)
		}

		return nil, pkgerrors.Wrapf(err, "load article %q", title)
	}

	return &article, nil
}

// Create stores a new article. The id of a is ignored and replaced by the
// store assigned one.
func (s *Service) Create(ctx context.Context, a models.Article) (*models.Article, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	if a.Title == "" {
		return nil, pkgerrors.Wrap(service.ErrValidation, "article title is required")
	}

	a.ID = 0

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureTitleFree(tx, a.Title, 0); err != nil {
			return err
		}

		if err := tx.Create(&a).Error; err != nil {
			if service.IsDuplicateKey(err) {
				return pkgerrors.Wrapf(service.ErrConflict, "article %q", a.Title)
			}

			return pkgerrors.Wrapf(err, "create article %q", a.Title)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// Update merges p into the stored article field by field.
func (s *Service) Update(ctx context.Context, id uint64, p models.ArticlePatch) (*models.Article, error) {
	if s.db == nil {
		return nil, service.ErrDBNil
	}

	var article *models.Article

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		if article, err = byID(tx, id); err != nil {
			return err
		}

		previous := article.Title
		article.Update(p)

		if article.Title != previous {
			if err = ensureTitleFree(tx, article.Title, article.ID); err != nil {
				return err
			}
		}

		if err = tx.Save(article).Error; err != nil {
			if service.IsDuplicateKey(err) {
				return pkgerrors.Wrapf(service.ErrConflict, "article %q", article.Title)
			}

			return pkgerrors.Wrapf(err, "save article %d", id)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return article, nil
}

func byID(db *gorm.DB, id uint64) (*models.Article, error) {
	var article models.Article

	if err := db.First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrapf(service.ErrNotFound, "article %d", id)
		}

		return nil, pkgerrors.Wrapf(err, "load article %d", id)
	}

	return &article, nil
}

func ensureTitleFree(tx *gorm.DB, title string, exceptID uint64) error {
	var count int64

	err := tx.Model(&models.Article{}).Where(models.WhereTitleIs, title).Where("id <> ?", exceptID).Count(&count).Error
	if err != nil {
		return pkgerrors.Wrapf(err, "check article title %q", title)
	}

	if count > 0 {
		return pkgerrors.Wrapf(service.ErrConflict, "article %q already exists", title)
	}

	return nil
}
