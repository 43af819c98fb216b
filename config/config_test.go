package config

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DATABASE_URL", "sqlite:///tmp/eventqa.db")
	t.Setenv("BOOTSTRAP_ORGANIZER_ID", "42")
	t.Setenv("QUESTIONS_CHANNEL_ID", "@event_questions")
	t.Setenv("NOTIFY_TIMEOUT", "3s")
	t.Setenv("EMAIL_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, int64(42), cfg.BootstrapOrganizerID)
	assert.Equal(t, "@event_questions", cfg.QuestionsChannelID)
	assert.Equal(t, 3*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, 2*time.Second, cfg.Email.Timeout)
	assert.True(t, cfg.UsesSQLite())
	assert.Equal(t, "/tmp/eventqa.db", cfg.SQLitePath())
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("FIRST_ADMIN_ID", "7")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaultDBUrl, cfg.DBUrl)
	assert.False(t, cfg.UsesSQLite())
	assert.Equal(t, int64(7), cfg.BootstrapOrganizerID)
	assert.Equal(t, 10*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, 10*time.Second, cfg.Email.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing token", map[string]string{"BOT_TOKEN": ""}},
		{"webhook without secret", map[string]string{"BOT_TOKEN": "t", "WEBHOOK_URL": "https://bot.example.com"}},
		{"bad organizer id", map[string]string{"BOT_TOKEN": "t", "BOOTSTRAP_ORGANIZER_ID": "abc"}},
		{"bad legacy organizer id", map[string]string{"BOT_TOKEN": "t", "FIRST_ADMIN_ID": "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GO_ENV", "production")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production", "warn")

	logger.Info("dropped")
	require.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	logger.Warn("kept", "user_id", 42)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.EqualValues(t, 42, rec["user_id"])
}
