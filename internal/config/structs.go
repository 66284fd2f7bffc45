package config

import (
	"github.com/vidyodaya/vidyodaya-api/internal/logger"
)

// Seed controls the initial data written into an empty database.
type Seed struct {
	Enabled       bool     // seed roles and the admin user when the users table is empty
	Roles         []string // role names to create
	AdminPassword string   // password of the seeded admin user
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Seed      Seed
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	EnableMetrics  bool   // expose prometheus metrics on /metrics
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}
