package telegram

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"eventqa/internal/domain"
)

// Dispatcher accepts inbound messages for processing.
type Dispatcher interface {
	Dispatch(in domain.Inbound) error
}

// Seen reports whether an update ID was already delivered.
type Seen interface {
	Seen(updateID int64) bool
}

// Receiver turns updates from polling or the webhook into inbound messages,
// dropping redeliveries and anything that is not private-chat text.
type Receiver struct {
	dispatcher Dispatcher
	seen       Seen
	logger     *slog.Logger
}

// NewReceiver returns a Receiver. seen may be nil to disable duplicate suppression.
func NewReceiver(dispatcher Dispatcher, seen Seen, logger *slog.Logger) *Receiver {
	return &Receiver{dispatcher: dispatcher, seen: seen, logger: logger}
}

// Receive handles one update. The error is non-nil only when the dispatcher rejected it.
func (r *Receiver) Receive(u tgbotapi.Update) error {
	in, ok := ToInbound(u)
	if !ok {
		r.logger.Debug("update ignored", "update_id", u.UpdateID)
		return nil
	}
	if r.seen != nil && r.seen.Seen(in.UpdateID) {
		r.logger.Debug("duplicate update dropped", "update_id", in.UpdateID)
		return nil
	}
	if err := r.dispatcher.Dispatch(in); err != nil {
		r.logger.Warn("dispatch failed", "update_id", in.UpdateID, "error", err)
		return err
	}
	return nil
}

// Poll adapts Receive to Client.Poll.
func (r *Receiver) Poll(u tgbotapi.Update) {
	_ = r.Receive(u)
}

// ToInbound extracts a private-chat text message from u.
func ToInbound(u tgbotapi.Update) (domain.Inbound, bool) {
	m := u.Message
	if m == nil || m.From == nil || m.Chat == nil || m.Text == "" {
		return domain.Inbound{}, false
	}
	if !m.Chat.IsPrivate() {
		return domain.Inbound{}, false
	}
	return domain.Inbound{
		UpdateID: int64(u.UpdateID),
		UserID:   m.From.ID,
		ChatID:   m.Chat.ID,
		Text:     m.Text,
	}, true
}
