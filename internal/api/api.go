// Package api exposes the task service over HTTP.
package api

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"taskboard/internal/services"
)

// Options configures the HTTP server.
type Options struct {
	// AllowOrigins is a comma separated CORS origin list.
	AllowOrigins string
	// HealthTimeout bounds the store ping behind GET /health.
	HealthTimeout time.Duration
	// Checks are extra dependencies reported by GET /health under their
	// name. A failing check makes the server unhealthy.
	Checks map[string]func(context.Context) error
}

// DefaultOptions returns options suitable for local use.
func DefaultOptions() Options {
	return Options{
		AllowOrigins:  "*",
		HealthTimeout: 2 * time.Second,
	}
}

// Server wires the task routes onto a fiber app.
type Server struct {
	app    *fiber.App
	tasks  services.TaskService
	logger *log.Logger
	opts   Options
}

// New creates a server for the given task service.
func New(tasks services.TaskService, logger *log.Logger, opts Options) *Server {
	s := &Server{
		tasks:  tasks,
		logger: logger,
		opts:   opts,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "taskboard",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(requestLogger(logger))
	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: opts.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	s.setupRoutes()
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.healthHandler)

	tasks := s.app.Group("/api/tasks")
	tasks.Get("/", s.listTasks)
	tasks.Post("/", s.createTask)
	tasks.Put("/:id", s.updateTask)
	tasks.Delete("/:id", s.deleteTask)
}

// requestLogger logs one line per request once the error handler has set
// the final status.
func requestLogger(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		logger.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
		)
		return nil
	}
}
