package delivery

import (
	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, h *Handler) {
	r.With(httputil.RecoverMiddleware).Get("/", h.HealthCheck)
	r.With(httputil.RecoverMiddleware).Post("/api/transcribe-and-chat", h.TranscribeAndChat)
}
