// Package main provides the entry point of the vidyodaya backend.
// It runs a Fiber web server exposing a REST API to create, update and
// retrieve roles, users and articles. Users and roles are linked many to
// many; a user's role list is the single place memberships are changed.
// Data is persisted with gorm on MySQL, PostgreSQL or SQLite.
package main
