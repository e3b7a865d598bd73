package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/passgen/passgen-go/internal/middleware"
)

// RouterConfig carries the limits applied to the public routes.
type RouterConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter mounts the health check and the rate-limited API routes.
func NewRouter(gen *GeneratorHandler, det *DetectHandler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/api/v1/generate", gen.HandleGenerate)
		r.Post("/api/v1/strength", gen.HandleStrength)
		r.Post("/api/v1/detect", det.HandleDetect)
	})

	return r
}
