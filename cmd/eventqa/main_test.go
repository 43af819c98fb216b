package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventqa/config"
)

func TestWebhookURL(t *testing.T) {
	assert.Equal(t, "https://bot.example.com/telegram/webhook/s3cret", webhookURL("https://bot.example.com/", "s3cret"))
	assert.Equal(t, "https://bot.example.com/tg/telegram/webhook/s3cret", webhookURL("https://bot.example.com/tg", "s3cret"))
}

func TestOpenStore_SQLite(t *testing.T) {
	cfg := &config.Config{DBUrl: "sqlite://" + filepath.Join(t.TempDir(), "eventqa.db")}
	st, err := openStore(context.Background(), cfg)
	require.NoError(t, err)
	defer st.db.Close()

	presenters, err := st.presenters.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, presenters)
}
