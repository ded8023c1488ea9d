package app

import (
	"log/slog"

	"github.com/newrelic/go-agent/v3/newrelic"

	"driveu/internal/config"
)

// NewRelicApp starts the New Relic agent. It returns nil when the agent is
// disabled or fails to start; callers treat nil as "no instrumentation".
func NewRelicApp(cfg config.NewRelicConfig, log *slog.Logger) *newrelic.Application {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return nil
	}

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(true),
	)
	if err != nil {
		log.Error("failed to initialize New Relic", "error", err)
		return nil
	}

	log.Info("New Relic enabled", "app", cfg.AppName)
	return nrApp
}
