package api

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/evalboard/console/pkg/api/handlers"
	"github.com/evalboard/console/pkg/evals"
	"github.com/evalboard/console/pkg/store"
	"github.com/evalboard/console/pkg/watch"
)

// Server is the console HTTP server.
type Server struct {
	app     *fiber.App
	cfg     Config
	svc     *evals.Service
	watcher *watch.Watcher
}

// NewServer wires the eval service, routes and middleware.
func NewServer(cfg Config) (*Server, error) {
	cache := store.NewFileCache(cfg.CacheDir)
	svc := evals.NewService(cfg.RawRoot, cache, cfg.CacheDir)

	app := fiber.New(fiber.Config{
		AppName:               "evalboard-console",
		DisableStartupMessage: !cfg.DevMode,
	})
	app.Use(recover.New())
	if cfg.DevMode {
		app.Use(logger.New())
	}

	s := &Server{app: app, cfg: cfg, svc: svc}
	if cfg.WatchRawRoot {
		s.watcher = watch.NewWatcher(cfg.RawRoot, svc)
	}

	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	h := handlers.NewEvalHandlers(s.svc)
	evalAPI := s.app.Group("/api/evals")
	evalAPI.Get("/scan", h.ScanModels)
	evalAPI.Get("/models", h.ListModels)
	evalAPI.Get("/models/:id", h.GetModel)
	evalAPI.Get("/models/:id/benchmarks/:benchmark/samples", h.GetSamples)
	evalAPI.Post("/maintenance/legacy-cleanup", h.CleanupLegacy)
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start begins serving and, when configured, watching the raw root.
func (s *Server) Start() error {
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			log.Printf("[server] raw-root watcher disabled: %v", err)
		}
	}
	return s.app.Listen(fmt.Sprintf(":%d", s.cfg.Port))
}

// Shutdown stops the watcher and drains the HTTP server.
func (s *Server) Shutdown() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	return s.app.Shutdown()
}
