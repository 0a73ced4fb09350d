package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Davidshtp/Dashboard/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the dashboard
// gateway API. It applies JSON content-type enforcement and request logging
// globally, and bearer-token authentication on everything except the public
// auth endpoints.
//
// Routes:
//
//	POST /api/auth/register          → authHandler.Register        (public)
//	POST /api/auth/login             → authHandler.Login           (public)
//	POST /api/auth/forgot-password   → authHandler.ForgotPassword  (public)
//	POST /api/auth/reset-password    → authHandler.ResetPassword   (public)
//	GET  /api/auth/me                → authHandler.Me
//	GET/POST /api/categories         → categoryHandler
//	GET/PUT/DELETE /api/categories/{id}
//	GET/POST /api/items              → itemHandler
//	GET/PUT/DELETE /api/items/{id}
//	GET  /api/items/by-category/{id}
//	GET/PUT /api/profile/{id}        → profileHandler
//	PUT  /api/profile/{id}/email
//	PUT  /api/profile/{id}/password
func NewRouter(
	authHandler *AuthHandler,
	categoryHandler *CategoryHandler,
	itemHandler *ItemHandler,
	profileHandler *ProfileHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/forgot-password", authHandler.ForgotPassword)
		r.Post("/auth/reset-password", authHandler.ResetPassword)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(verifier))

			r.Get("/auth/me", authHandler.Me)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryHandler.GetAll)
				r.Post("/", categoryHandler.Create)
				r.Get("/{id}", categoryHandler.Get)
				r.Put("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
			})

			r.Route("/items", func(r chi.Router) {
				r.Get("/", itemHandler.GetAll)
				r.Post("/", itemHandler.Create)
				r.Get("/by-category/{id}", itemHandler.GetByCategory)
				r.Get("/{id}", itemHandler.Get)
				r.Put("/{id}", itemHandler.Update)
				r.Delete("/{id}", itemHandler.Delete)
			})

			r.Route("/profile/{id}", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Put("/", profileHandler.Update)
				r.Put("/email", profileHandler.UpdateEmail)
				r.Put("/password", profileHandler.ChangePassword)
			})
		})
	})

	return r
}
