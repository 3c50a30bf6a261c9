package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ashishkj21/DailyPulseSlackBot/internal/assistant"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/config"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/github"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/linear"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/llm"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/report"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/slack"
	"github.com/ashishkj21/DailyPulseSlackBot/internal/storage/pgx"
	transport "github.com/ashishkj21/DailyPulseSlackBot/internal/transport/http"
)

type Application struct {
	Config     *config.Config
	Logger     *slog.Logger
	Aggregator *report.Aggregator
}

func New(cfg *config.Config) *Application {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	tracker := linear.NewClient(cfg.Linear.APIKey, cfg.Linear.Endpoint)
	events := github.NewClient(cfg.GitHub.BaseURL)

	return &Application{
		Config:     cfg,
		Logger:     logger,
		Aggregator: report.NewAggregator(tracker, events, logger),
	}
}

// Serve runs the Slack events webhook server until ctx is canceled.
func (app *Application) Serve(ctx context.Context) error {
	cfg := app.Config

	store, err := pgx.NewStorage(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("db ping failed: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	model := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)

	bot := assistant.New(model, []assistant.Tool{
		&assistant.ActivityTool{
			Reporter: app.Aggregator,
			Email:    cfg.Linear.UserEmail,
			Username: cfg.GitHub.Username,
		},
		&assistant.MemoryTool{
			Store:    store,
			Username: cfg.GitHub.Username,
		},
		&assistant.SubmitTool{
			Store:    store,
			Username: cfg.GitHub.Username,
		},
	}, app.Logger)

	messenger := slack.NewClient(cfg.Slack.BotToken)
	verify := func(timestamp, signature string, body []byte) error {
		return slack.VerifySignature(cfg.Slack.SigningSecret, timestamp, signature, body)
	}

	handler := transport.NewHandler(bot, messenger, verify, assistant.WelcomeMessage, app.Logger)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("ListenAndServe failed: %w", err)
	case <-ctx.Done():
	}

	app.Logger.Info("signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	app.Logger.Info("HTTP server gracefully stopped")
	return nil
}

// Report produces the combined activity digest for the configured user.
func (app *Application) Report(ctx context.Context, day time.Time) (string, error) {
	app.Logger.Info("generating report",
		"email", app.Config.Linear.UserEmail,
		"username", app.Config.GitHub.Username,
		"date", day.Format("2006-01-02"),
	)

	return app.Aggregator.Combined(ctx, app.Config.Linear.UserEmail, app.Config.GitHub.Username, day)
}
