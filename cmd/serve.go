package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lessbyless/lessbyless/internal/config"
	"github.com/lessbyless/lessbyless/internal/logger"
	"github.com/lessbyless/lessbyless/internal/notify"
	"github.com/lessbyless/lessbyless/internal/notify/resend"
	"github.com/lessbyless/lessbyless/internal/server"
	"github.com/lessbyless/lessbyless/internal/storage/bolt"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and milestone scanner",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	logger.InitJSON(slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := bolt.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startScanner(ctx, cfg, store)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.New(store).Router(),
	}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	logger.Info("Listening", "addr", cfg.ListenAddr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// startScanner launches the milestone sweep loop when Resend credentials are
// present. Without them the server still runs, it just never emails.
func startScanner(ctx context.Context, cfg *config.Config, store *bolt.Store) {
	apiKey := os.Getenv("LESSBYLESS_RESEND_API_KEY")
	if apiKey == "" || cfg.NotifyEmail == "" {
		logger.Warn("Milestone notifications disabled", "reason", "missing LESSBYLESS_RESEND_API_KEY or notify_email")
		return
	}

	scanner := &notify.Scanner{
		Store: store,
		Notifier: &resend.Notifier{
			APIKey: apiKey,
			From:   cfg.NotifyFrom,
			Email:  cfg.NotifyEmail,
		},
		Interval: cfg.ScanInterval(),
	}
	go scanner.Run(ctx)
}
