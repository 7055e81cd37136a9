package cmd

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logging"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.Server.Env)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return log, nil
}

// loadContent prefers content.path and falls back to the embedded document.
func loadContent(cfg *config.Config) (*content.Store, error) {
	if cfg.Content.Path == "" {
		return content.Default()
	}
	return content.LoadFile(cfg.Content.Path)
}

func newSender(cfg *config.Config) contact.Sender {
	if cfg.Contact.Transport == config.TransportSMTP {
		return contact.NewSMTP(cfg.Contact.SMTP)
	}
	return contact.NewRelay(cfg.Contact.Endpoint, &http.Client{Timeout: cfg.Contact.Timeout})
}
