package http

import (
	"log/slog"
	"net/http"

	"eventqa/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes.
// webhook may be nil when the bot uses long polling.
func NewRouter(health *HealthController, webhook *WebhookController, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", health.Health)
	if webhook != nil {
		mux.HandleFunc("POST /telegram/webhook/{secret}", webhook.Telegram)
	}

	return middleware.LoggingMiddleware(logger, mux)
}
