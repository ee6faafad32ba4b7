package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/printstock/internal/inventory"
)

type server struct {
	auth *authService
	inv  *inventory.Service
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger,
		middleware.Recoverer,
	)

	r.Get("/healthz", handleHealth)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/preset", s.handlePresetGet)
		r.Post("/preset", s.handlePresetUpdate)

		r.Get("/filaments", s.handleFilamentsList)
		r.Post("/filaments", s.handleFilamentCreate)
		r.Post("/filaments/{id}", s.handleFilamentUpdate)
		r.Delete("/filaments/{id}", s.handleFilamentDelete)

		r.Post("/quote", s.handleQuote)

		r.Get("/items/new", s.handleItemDefaults)
		r.Get("/items", s.handleItemsList)
		r.Post("/items", s.handleItemCreate)
		r.Get("/items/{id}", s.handleItemDetail)
		r.Post("/items/{id}", s.handleItemUpdate)
		r.Delete("/items/{id}", s.handleItemDelete)
		r.Post("/items/{id}/variations/preview", s.handleVariationPreview)
		r.Put("/items/{id}/variations", s.handleVariationsSave)
		r.Get("/items/{id}/matrix", s.handleMatrix)
		r.Get("/items/{id}/matrix.xlsx", s.handleMatrixXLSX)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
