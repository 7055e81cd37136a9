package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		store, err := loadContent(cfg)
		if err != nil {
			return fmt.Errorf("loading content: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := web.Options{
			Config:  cfg,
			Content: store,
			Metrics: web.NewMetrics("portfolio"),
			Logger:  log,
		}

		var recorder contact.Recorder
		if cfg.Analytics.Enabled {
			db, err := analytics.Open(cfg.Analytics.Path)
			if err != nil {
				return fmt.Errorf("opening analytics: %w", err)
			}
			defer db.Close()
			go db.Janitor(ctx, cfg.Analytics.CleanupInterval, log)

			opts.Analytics = db
			recorder = db
			log.Info("visitor tracking enabled with hashed IP addresses", zap.String("db", cfg.Analytics.Path))
		}
		opts.Submitter = contact.NewSubmitter(newSender(cfg), recorder, log)

		srv, err := web.New(opts)
		if err != nil {
			return err
		}
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
