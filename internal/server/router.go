package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"callmonitor/internal/security"
)

// NewRouter wires the API routes. The provider callback and health endpoints
// are outside the auth group; everything under /api requires a valid token.
func NewRouter(h *Handler, tokens *security.TokenProvider) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Provider-Secret"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(MetricsMiddleware)

	r.Get("/healthz", h.Healthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/api/provider/recording-callback", h.RecordingCallback)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(tokens))
		r.Post("/api/calls/start", h.StartCall)
		r.Get("/api/calls/{id}", h.GetCall)
		r.Post("/api/calls/{id}/transcribe", h.TriggerTranscription)
		r.Get("/api/call-activity", h.CallActivity)
		r.Get("/api/call-capabilities", h.CallCapabilities)
		r.Put("/api/voice/config", h.PutVoiceConfig)
	})

	return otelhttp.NewHandler(r, "callmonitor.http")
}
