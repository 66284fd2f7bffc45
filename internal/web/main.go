// Package web assembles the fiber application serving the REST API.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/vidyodaya/vidyodaya-api/internal/config"
	fiberlogger "github.com/vidyodaya/vidyodaya-api/internal/logger/adapter/fiber"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler/article"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler/role"
	"github.com/vidyodaya/vidyodaya-api/internal/web/handler/user"
)

const (
	// CheckAliveURI is the load balancer health check path.
	CheckAliveURI = "/checkalive"

	// MetricsURI is the prometheus scrape path.
	MetricsURI = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for a termination signal and shuts the service down.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown drains the service and stops the http server. Unless fast
// shutdown is enabled, checkalive fails for ShutDownTime seconds first so
// load balancers stop routing to this instance.
func (s *Service) Shutdown() {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive answers the health check: 200 while serving, 503 while draining.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) (*Service, error) {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAliveURI,
	}))

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	service := &Service{
		cfg:          cfg,
		App:          app,
		db:           db,
		fastShutDown: cfg.DevMode,
	}

	app.Get(CheckAliveURI, service.CheckAlive)

	if cfg.Webserver.EnableMetrics {
		app.Get(MetricsURI, adaptor.HTTPHandler(promhttp.Handler()))
	}

	// init handlers (they register their own routes)
	for _, h := range []handler.Service{&role.Service{}, &user.Service{}, &article.Service{}} {
		if err := h.Init(app, cfg, db); err != nil {
			return nil, err
		}
	}

	service.alive.Store(true)

	return service, nil
}
