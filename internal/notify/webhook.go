// Package notify delivers best-effort side-channel notifications.
// Delivery is fire-and-forget: failures are logged and discarded, and
// no call here ever blocks or fails the operation that triggered it.
package notify

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/island-scholars/server/internal/config"
	"github.com/island-scholars/server/internal/domain/applications"
	"github.com/island-scholars/server/internal/metrics"
	"github.com/rs/zerolog"
)

// Webhook posts an empty JSON body to a configured listener URL when
// an application is created. No retries; one short-timeout attempt.
type Webhook struct {
	listenerURL string
	client      *http.Client
	logger      zerolog.Logger

	// wg lets tests wait for in-flight dispatches to settle.
	wg sync.WaitGroup
}

func NewWebhook(cfg config.NotifyConfig, logger zerolog.Logger) *Webhook {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Webhook{
		listenerURL: cfg.ListenerURL,
		client:      &http.Client{Timeout: timeout},
		logger:      logger.With().Str("component", "notify").Logger(),
	}
}

var _ applications.Notifier = (*Webhook)(nil)

// ApplicationCreated dispatches the "new application" signal on a
// separate goroutine so the caller's persistence path never waits on
// listener latency.
func (w *Webhook) ApplicationCreated(application *applications.Application) {
	if w.listenerURL == "" {
		w.logger.Debug().
			Int64("application_id", application.ID).
			Msg("no listener configured, skipping notification")
		return
	}

	applicationID := application.ID
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.post(applicationID)
	}()
}

func (w *Webhook) post(applicationID int64) {
	resp, err := w.client.Post(w.listenerURL, "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		metrics.NotificationsDispatched.WithLabelValues("error").Inc()
		w.logger.Warn().
			Err(err).
			Int64("application_id", applicationID).
			Msg("new-application notification failed")
		return
	}
	metrics.NotificationsDispatched.WithLabelValues("delivered").Inc()
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	w.logger.Info().
		Int64("application_id", applicationID).
		Int("status", resp.StatusCode).
		Msg("new-application notification delivered")
}

// Wait blocks until all in-flight notifications finish. Used by tests
// and graceful shutdown.
func (w *Webhook) Wait() {
	w.wg.Wait()
}
