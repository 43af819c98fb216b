package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"eventqa/config"
	"eventqa/internal/adapters/email"
	"eventqa/internal/adapters/telegram"
	"eventqa/internal/conversation"
	"eventqa/internal/dedupe"
	deliveryhttp "eventqa/internal/delivery/http"
	"eventqa/internal/notify"
	"eventqa/internal/services"
)

const banner = `
    ╭──────────────────────────────╮
    │                              │
    │   ┏━╸╻ ╻┏━╸┏┓╻╺┳╸   ┏━┓┏━┓   │
    │   ┣╸ ┃┏┛┣╸ ┃┗┫ ┃    ┃┓┃┣━┫   │
    │   ┗━╸┗┛ ┗━╸╹ ╹ ╹    ┗┻┛╹ ╹   │
    │                              │
    │        event Q&A bot         │
    │                              │
    ╰──────────────────────────────╯
`

const (
	shutdownTimeout = 10 * time.Second
	dedupeTTL       = 10 * time.Minute
	dedupeSize      = 10000
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := config.NewLogger(cfg)
	printBanner(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.db.Close()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("creating mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	schedule := services.NewScheduleService(st.presenters, logger.With("component", "schedule"))
	presenters, err := config.LoadPresenters(cfg.PresentersFile)
	if err != nil {
		return err
	}
	if len(presenters) > 0 {
		if err := schedule.Seed(ctx, presenters); err != nil {
			return err
		}
	}

	bot, err := telegram.NewClient(cfg.BotToken, logger.With("component", "telegram"))
	if err != nil {
		return err
	}

	users := services.NewUserService(st.users, emailService, cfg.BootstrapOrganizerID, cfg.Email.Timeout, logger.With("component", "users"))
	notifier := notify.NewNotifier(bot, cfg.QuestionsChannelID, cfg.NotifyTimeout, logger.With("component", "notify"))
	questions := services.NewQuestionService(st.users, st.questions, notifier)
	gate := services.NewGate(st.users, logger.With("component", "gate"))

	engine := conversation.NewEngine(users, schedule, questions, gate, bot, logger.With("component", "conversation"))
	dispatcher := conversation.NewDispatcher(ctx, engine, logger.With("component", "dispatcher"))
	defer dispatcher.Close()

	seen := dedupe.New(dedupeTTL, dedupeSize, time.Minute)
	defer seen.Close()
	receiver := telegram.NewReceiver(dispatcher, seen, logger.With("component", "receiver"))

	var webhook *deliveryhttp.WebhookController
	if cfg.WebhookURL != "" {
		webhook = deliveryhttp.NewWebhookController(cfg.WebhookSecret, receiver, logger.With("component", "webhook"))
		if err := bot.SetWebhook(webhookURL(cfg.WebhookURL, cfg.WebhookSecret)); err != nil {
			return err
		}
	}
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           deliveryhttp.NewRouter(deliveryhttp.NewHealthController(st.db), webhook, logger.With("component", "http")),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if webhook == nil {
		g.Go(func() error {
			return bot.Poll(gctx, receiver.Poll)
		})
	}

	logger.Info("bot started", "webhook", webhook != nil)
	err = g.Wait()
	logger.Info("shutting down")
	return err
}

// webhookURL appends the secret webhook route to the public base URL.
func webhookURL(base, secret string) string {
	return strings.TrimSuffix(base, "/") + "/telegram/webhook/" + secret
}

func printBanner(cfg *config.Config) {
	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	green := color.New(color.FgGreen)
	line := func(label, value string) {
		green.Print("    ▶ ")
		fmt.Printf("%-11s %s\n", label+":", value)
	}
	line("Environment", cfg.Environment)
	if cfg.UsesSQLite() {
		line("Database", "sqlite "+cfg.SQLitePath())
	} else {
		line("Database", "postgres")
	}
	if cfg.WebhookURL != "" {
		line("Updates", "webhook "+cfg.WebhookURL)
	} else {
		line("Updates", "long polling")
	}
	line("HTTP", cfg.HTTPAddr)
	if cfg.QuestionsChannelID != "" {
		line("Channel", cfg.QuestionsChannelID)
	}
	fmt.Println()
}

