// Package httpapi is the JSON boundary of the server. It decodes requests,
// delegates to the services, and translates the shared error taxonomy into
// HTTP responses. No business rule lives here.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/everkeep/everkeep/internal/logging"
	"github.com/everkeep/everkeep/internal/server/services"
)

type Server struct {
	users   *services.UserService
	entries *services.EntryService
	secret  []byte
	logger  logging.Logger
}

func NewServer(users *services.UserService, entries *services.EntryService, secret []byte, logger logging.Logger) *Server {
	return &Server{users: users, entries: entries, secret: secret, logger: logger}
}

// Router mounts the public auth routes and the token-guarded API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/users/me", s.handleMe)
			r.Get("/users", s.handleListUsers)
			r.Get("/users/pending", s.handleListPendingUsers)
			r.Put("/users/{id}/profile", s.handleUpdateProfile)
			r.Put("/users/{id}/status", s.handleUpdateStatus)
			r.Put("/users/{id}/password", s.handleResetPassword)
			r.Delete("/users/{id}", s.handleDeleteUser)

			r.Post("/entries", s.handleSaveEntry)
			r.Put("/entries/{id}", s.handleSaveEntry)
			r.Get("/entries", s.handleListEntries)
			r.Get("/entries/{id}", s.handleGetEntry)
			r.Delete("/entries/{id}", s.handleDeleteEntry)
		})
	})

	return r
}
