// Package daemon wires the database and the web service into the running server.
package daemon

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/config"
	"github.com/vidyodaya/vidyodaya-api/internal/db"
	"github.com/vidyodaya/vidyodaya-api/internal/logger"
	"github.com/vidyodaya/vidyodaya-api/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until it is shut down
// by SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	err := d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))

	if sqlDB, dbErr := d.db.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}

	return err
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to init logger")
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(gdb); err != nil {
		return nil, err
	}

	if err = seed(context.Background(), cfg, gdb); err != nil {
		return nil, err
	}

	webService, err := web.New(cfg, gdb)
	if err != nil {
		return nil, errors.Wrap(err, "failed to init web service")
	}

	log.Info().
		Str("engine", cfg.DB.GormEngine).
		Int("port", cfg.Webserver.Port).
		Bool("dev", cfg.DevMode).
		Msg("daemon initialized")

	return &Daemon{
		cfg:        cfg,
		db:         gdb,
		webService: webService,
	}, nil
}
