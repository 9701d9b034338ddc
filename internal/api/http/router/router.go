// Package router wires the HTTP API routes.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/userkeeper-server/internal/api/http/handler"
	"github.com/dtroode/userkeeper-server/internal/api/http/middleware"
	"github.com/dtroode/userkeeper-server/internal/logger"
)

// New builds the HTTP router.
//
// Routes:
//
//	POST   /api/users
//	GET    /api/users/{userId}
//	GET    /api/users/{userId}/avatar
//	DELETE /api/users/{userId}/avatar
//	GET    /healthz
//	GET    /readyz
func New(
	userService handler.UserService,
	avatarService handler.AvatarService,
	checks map[string]handler.HealthChecker,
	logger *logger.Logger,
) http.Handler {
	users := handler.NewUserHandler(userService, avatarService, logger)
	health := handler.NewHealthHandler(checks)

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", users.Create)
		r.Get("/{userId}", users.Get)
		r.Get("/{userId}/avatar", users.GetAvatar)
		r.Delete("/{userId}/avatar", users.DeleteAvatar)
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
