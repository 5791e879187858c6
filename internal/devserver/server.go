package devserver

import (
	"time"

	"ftms-portal/internal/config"
	"ftms-portal/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// New assembles the dev server fiber app over the given store
func New(cfg *config.Config, store *Store, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "FTMS Portal Dev Server",
	})

	app.Use(requestLogger(log))

	handler := NewHandler(store, cfg.Server.JWT.Secret, cfg.Server.JWT.ExpiryMinutes)
	auth := AuthMiddleware(store, cfg.Server.JWT.Secret)

	api := app.Group("/api")
	api.Post("/auth/login", handler.Login)
	api.Get("/auth/me", auth, handler.Me)

	tasks := api.Group("/tasks", auth)
	tasks.Get("/", handler.ListTasks)
	tasks.Post("/", RoleMiddleware(string(domain.RoleHOD), string(domain.RoleAdmin)), handler.CreateTask)
	tasks.Get("/by-user/:userId", handler.ListTasksByUser)
	tasks.Get("/:id", handler.GetTask)
	tasks.Put("/:id/status", handler.UpdateStatus)
	tasks.Patch("/:id/start", handler.StartTask)
	tasks.Post("/:id/submit", handler.SubmitTask)
	tasks.Post("/:id/review", handler.ReviewTask)
	tasks.Get("/:id/submissions", handler.ListSubmissions)

	return app
}

// requestLogger logs each request with method, path, status and timing
func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("elapsed", time.Since(start)))
		return err
	}
}
