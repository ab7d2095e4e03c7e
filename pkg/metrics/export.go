package metrics

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/wordfreq/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Export writes the registry to every destination configured in cfg. All
// destinations are attempted; their errors are joined.
func (m *Metrics) Export(cfg config.MetricsConfig) error {
	var errs []error
	if cfg.TextfilePath != "" {
		if err := prometheus.WriteToTextfile(cfg.TextfilePath, m.Registry); err != nil {
			errs = append(errs, fmt.Errorf("writing metrics textfile %s: %w", cfg.TextfilePath, err))
		} else {
			slog.Debug("metrics textfile written", "path", cfg.TextfilePath)
		}
	}
	if cfg.PushgatewayURL != "" {
		if err := push.New(cfg.PushgatewayURL, cfg.Job).Gatherer(m.Registry).Push(); err != nil {
			errs = append(errs, fmt.Errorf("pushing metrics to %s: %w", cfg.PushgatewayURL, err))
		} else {
			slog.Debug("metrics pushed", "url", cfg.PushgatewayURL, "job", cfg.Job)
		}
	}
	return errors.Join(errs...)
}
