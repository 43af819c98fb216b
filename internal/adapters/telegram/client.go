// Package telegram connects the bot to the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"eventqa/internal/domain"
)

// pollTimeoutSeconds is the long-poll duration asked of Telegram; the HTTP client timeout must exceed it.
const pollTimeoutSeconds = 60

// botAPI is the subset of *tgbotapi.BotAPI the client uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Client sends replies and broadcasts through the Bot API and receives updates.
// It implements domain.Messenger and domain.Broadcaster.
type Client struct {
	api    botAPI
	logger *slog.Logger
}

// NewClient authenticates with token and returns a Client.
func NewClient(token string, logger *slog.Logger) (*Client, error) {
	_ = tgbotapi.SetLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	httpClient := &http.Client{Timeout: (pollTimeoutSeconds + 30) * time.Second}
	api, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	logger.Info("telegram bot authorized", "username", api.Self.UserName)
	return newClient(api, logger), nil
}

func newClient(api botAPI, logger *slog.Logger) *Client {
	return &Client{api: api, logger: logger}
}

// Send delivers reply to chatID.
func (c *Client) Send(ctx context.Context, chatID int64, reply domain.Reply) error {
	return c.send(ctx, messageFor(chatID, reply))
}

// Broadcast posts text to destination, either a numeric chat ID or a public @channel name.
func (c *Client) Broadcast(ctx context.Context, destination, text string) error {
	var msg tgbotapi.MessageConfig
	if id, err := strconv.ParseInt(destination, 10, 64); err == nil {
		msg = tgbotapi.NewMessage(id, text)
	} else {
		if !strings.HasPrefix(destination, "@") {
			destination = "@" + destination
		}
		msg = tgbotapi.NewMessageToChannel(destination, text)
	}
	return c.send(ctx, msg)
}

// send runs the blocking Bot API call and gives up waiting when ctx ends.
func (c *Client) send(ctx context.Context, msg tgbotapi.MessageConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	errc := make(chan error, 1)
	go func() {
		_, err := c.api.Send(msg)
		errc <- err
	}()
	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("telegram send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poll long-polls for updates and passes each to handle until ctx is done.
func (c *Client) Poll(ctx context.Context, handle func(tgbotapi.Update)) error {
	if _, err := c.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	cfg.AllowedUpdates = []string{"message"}
	updates := c.api.GetUpdatesChan(cfg)
	c.logger.Info("polling for updates")

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			handle(u)
		}
	}
}

// SetWebhook asks Telegram to deliver updates to url.
func (c *Client) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	wh.AllowedUpdates = []string{"message"}
	if _, err := c.api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	c.logger.Info("webhook registered")
	return nil
}

// messageFor converts a reply to a Bot API message, one choice button per row.
func messageFor(chatID int64, reply domain.Reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	switch {
	case len(reply.Choices) > 0:
		rows := make([][]tgbotapi.KeyboardButton, len(reply.Choices))
		for i, choice := range reply.Choices {
			rows[i] = tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(choice))
		}
		kb := tgbotapi.NewReplyKeyboard(rows...)
		kb.ResizeKeyboard = true
		kb.OneTimeKeyboard = reply.OneTime
		msg.ReplyMarkup = kb
	case reply.ClearChoices:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	}
	return msg
}
