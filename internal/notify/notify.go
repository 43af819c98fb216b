// Package notify mirrors submitted questions to a broadcast destination.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventqa/internal/domain"
)

// Notifier posts every submitted question to one destination. It implements
// domain.QuestionNotifier; failures are logged and never returned.
type Notifier struct {
	broadcaster domain.Broadcaster
	destination string
	timeout     time.Duration
	logger      *slog.Logger
}

// NewNotifier returns a Notifier. An empty destination disables broadcasting.
func NewNotifier(broadcaster domain.Broadcaster, destination string, timeout time.Duration, logger *slog.Logger) *Notifier {
	return &Notifier{
		broadcaster: broadcaster,
		destination: strings.TrimSpace(destination),
		timeout:     timeout,
		logger:      logger,
	}
}

// QuestionSubmitted broadcasts q, bounded by the configured timeout.
func (n *Notifier) QuestionSubmitted(ctx context.Context, q *domain.Question) {
	if n.destination == "" || n.broadcaster == nil {
		return
	}
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	if err := n.broadcaster.Broadcast(ctx, n.destination, Message(q)); err != nil {
		n.logger.Warn("question broadcast failed",
			"question_id", q.ID,
			"destination", n.destination,
			"error", err,
		)
		return
	}
	n.logger.Debug("question broadcast", "question_id", q.ID, "destination", n.destination)
}

// Message renders the broadcast text for q.
func Message(q *domain.Question) string {
	return fmt.Sprintf("❓ New question\n\n👤 From: %s\n🎤 To: %s\n\n📝 Question:\n%s\n  %s",
		q.UserName, q.PresenterName, q.Text, Hashtag(q.PresenterName))
}

// Hashtag returns "#" followed by the last space-separated word of name.
func Hashtag(name string) string {
	words := strings.Split(name, " ")
	return "#" + words[len(words)-1]
}
