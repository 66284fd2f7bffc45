package models

import (
	"time"

	"github.com/vidyodaya/vidyodaya-api/internal/patch"
)

// WhereTitleIs is the where clause to look up an article by its unique title.
const WhereTitleIs = "title = ?"

// Article holds an article published on the website.
type Article struct {
	// ID is the store assigned identifier for the article.
	ID uint64 `gorm:"primaryKey"`
	// Title is the unique article title.
	Title string `gorm:"unique;size:255;not null"`
	// Description is a short summary of the article.
	Description string `gorm:"size:1024"`
	// ImageURL is the url of the article's thumbnail image.
	ImageURL string `gorm:"size:1024"`
	// Content is the article itself, stored as a pdf file.
	Content []byte
	// CreatedAt is the timestamp when the article was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the article was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Article model.
func (Article) TableName() string {
	return "articles"
}

// ArticlePatch is a partial article update.
type ArticlePatch struct {
	Title       patch.Value[string] `json:"title"       validate:"omitempty,max=255"`
	Description patch.Value[string] `json:"description" validate:"omitempty,max=1024"`
	ImageURL    patch.Value[string] `json:"imageUrl"    validate:"omitempty,max=1024"`
	Content     patch.Value[[]byte] `json:"content"`
}

// Update merges p into a field by field.
func (a *Article) Update(p ArticlePatch) {
	a.Title = patch.ReplaceNonZero(a.Title, p.Title)
	a.Description = patch.Replace(a.Description, p.Description)
	a.ImageURL = patch.Replace(a.ImageURL, p.ImageURL)
	a.Content = patch.ReplaceBytes(a.Content, p.Content)
}
