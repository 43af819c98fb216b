package http

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxUpdateBytes = 1 << 20

// UpdateReceiver accepts one Telegram update.
type UpdateReceiver interface {
	Receive(u tgbotapi.Update) error
}

type WebhookController struct {
	Secret   string
	Receiver UpdateReceiver
	Logger   *slog.Logger
}

func NewWebhookController(secret string, receiver UpdateReceiver, logger *slog.Logger) *WebhookController {
	return &WebhookController{Secret: secret, Receiver: receiver, Logger: logger}
}

// Telegram handles POST /telegram/webhook/{secret}. An unknown secret looks like an unknown route.
func (c *WebhookController) Telegram(w http.ResponseWriter, r *http.Request) {
	secret := r.PathValue("secret")
	if c.Secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(c.Secret)) != 1 {
		respondError(w, http.StatusNotFound, codeNotFound, "not found")
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateBytes)).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, codeBadRequest, "invalid update body")
		return
	}
	if err := c.Receiver.Receive(update); err != nil {
		c.Logger.Warn("webhook update rejected", "update_id", update.UpdateID, "error", err)
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "not accepting updates")
		return
	}
	respondOK(w, nil)
}
