// Package view holds the JSON representations of the API resources.
// Collections are never null: an entity without members renders [].
package view

import (
	"time"

	"github.com/vidyodaya/vidyodaya-api/internal/db/models"
)

// RoleRef is a role as listed inside a user.
type RoleRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// UserRef is a user as listed inside a role.
type UserRef struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// Role is the JSON view of a role.
type Role struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Users     []UserRef `json:"users"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// User is the JSON view of a user. The password hash is never exposed.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	PrimaryEmail string    `json:"primaryEmail"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Roles        []RoleRef `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Article is the JSON view of an article. Content is base64 encoded.
type Article struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Content     []byte    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewRole builds the view of r.
func NewRole(r models.Role) Role {
	users := make([]UserRef, 0, len(r.Users))
	for _, u := range r.Users {
		users = append(users, UserRef{ID: u.ID, Username: u.Username})
	}

	return Role{
		ID:        r.ID,
		Name:      r.Name,
		Users:     users,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// NewRoles builds the views of roles.
func NewRoles(roles []models.Role) []Role {
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, NewRole(r))
	}

	return out
}

// NewUser builds the view of u.
func NewUser(u models.User) User {
	roles := make([]RoleRef, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, RoleRef{ID: r.ID, Name: r.Name})
	}

	return User{
		ID:           u.ID,
		Username:     u.Username,
		PrimaryEmail: u.PrimaryEmail,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Roles:        roles,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// NewUsers builds the views of users.
func NewUsers(users []models.User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, NewUser(u))
	}

	return out
}

// NewArticle builds the view of a.
func NewArticle(a models.Article) Article {
	return Article{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		Content:     a.Content,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// NewArticles builds the views of articles.
func NewArticles(articles []models.Article) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		out = append(out, NewArticle(a))
	}

	return out
}
