package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"eventqa/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroadcaster struct {
	destination string
	text        string
	calls       int
	deadline    bool
	err         error
}

func (f *fakeBroadcaster) Broadcast(ctx context.Context, destination, text string) error {
	f.calls++
	f.destination = destination
	f.text = text
	_, f.deadline = ctx.Deadline()
	return f.err
}

func testQuestion() *domain.Question {
	return &domain.Question{ID: 9, UserName: "Ali", PresenterName: "Sara Ahmadi", Text: "What about eBPF?"}
}

func TestHashtag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single word", "Sara", "#Sara"},
		{"last word", "Sara Ahmadi", "#Ahmadi"},
		{"three words", "Mohammad Reza Karimi", "#Karimi"},
		{"trailing space", "Sara ", "#"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hashtag(tt.in))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t,
		"❓ New question\n\n👤 From: Ali\n🎤 To: Sara Ahmadi\n\n📝 Question:\nWhat about eBPF?\n  #Ahmadi",
		Message(testQuestion()))
}

func TestNotifier_QuestionSubmitted(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("broadcasts with deadline", func(t *testing.T) {
		b := &fakeBroadcaster{}
		n := NewNotifier(b, "@eventqa", time.Second, logger)
		n.QuestionSubmitted(context.Background(), testQuestion())

		require.Equal(t, 1, b.calls)
		assert.Equal(t, "@eventqa", b.destination)
		assert.Equal(t, Message(testQuestion()), b.text)
		assert.True(t, b.deadline)
	})

	t.Run("unconfigured destination is silent", func(t *testing.T) {
		b := &fakeBroadcaster{}
		n := NewNotifier(b, "  ", time.Second, logger)
		n.QuestionSubmitted(context.Background(), testQuestion())
		assert.Zero(t, b.calls)
	})

	t.Run("errors are swallowed", func(t *testing.T) {
		b := &fakeBroadcaster{err: errors.New("chat not found")}
		n := NewNotifier(b, "-100123", 0, logger)
		assert.NotPanics(t, func() { n.QuestionSubmitted(context.Background(), testQuestion()) })
		assert.Equal(t, 1, b.calls)
		assert.False(t, b.deadline)
	})
}
