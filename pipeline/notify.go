package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/chaos-io/garment2layers/config"
	"github.com/chaos-io/garment2layers/model"
	uhttp "github.com/chaos-io/garment2layers/util/http"
)

// Notifier posts batch reports to a configured webhook so downstream
// consumers learn that the mask set changed. Delivery is best effort; a
// failed notification is logged, never retried, and does not fail the run.
type Notifier struct {
	client uhttp.IClient
	cfg    config.NotifyConfig
	log    *zap.Logger
}

func NewNotifier(cfg config.NotifyConfig, log *zap.Logger) *Notifier {
	return &Notifier{
		client: uhttp.NewHTTPClient(),
		cfg:    cfg,
		log:    log,
	}
}

// Notify sends the report to the webhook. A no-op when no URL is configured.
func (n *Notifier) Notify(ctx context.Context, report *model.BatchReport) {
	if n.cfg.WebhookURL == "" {
		return
	}

	err := n.client.DoHTTPRequest(ctx, &uhttp.RequestParam{
		RequestURI: n.cfg.WebhookURL,
		Method:     "POST",
		Header:     map[string]string{"Content-Type": "application/json"},
		Body:       report,
		Timeout:    n.cfg.Timeout,
	})
	if err != nil {
		n.log.Warn("webhook notification failed",
			zap.String("run_id", report.RunID),
			zap.String("url", n.cfg.WebhookURL),
			zap.Error(err))
		return
	}
	n.log.Info("webhook notified", zap.String("run_id", report.RunID))
}
