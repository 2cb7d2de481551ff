package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the router: the SSE stream at /events and the static
// file catch-all, the latter behind a per-IP rate limiter.
func (h *Handler) Routes(staticRL *RateLimiter) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/events", h.Events)

	r.Group(func(r chi.Router) {
		r.Use(staticRL.Middleware)
		r.Get("/*", h.Static)
	})

	return r
}
