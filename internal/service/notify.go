package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/reporthub/backend/internal/app/appconfig"
	"github.com/reporthub/backend/internal/constant"
	"github.com/reporthub/backend/internal/model"
	"github.com/reporthub/backend/internal/model/types"
	"github.com/reporthub/backend/internal/pkg/async"
	"github.com/reporthub/backend/internal/pkg/dstructs"
	"github.com/reporthub/backend/internal/pkg/observability"
)

// Notify fans accepted reports out to the configured chat webhooks.
// Deliveries are best-effort: events queue in memory, a full queue drops,
// and a failed delivery is logged and forgotten, never retried.
type Notify struct {
	Enabled bool

	client  *http.Client
	targets []string
	workers int

	q *dstructs.FlQueue[model.Report]
}

func NewNotify(conf *appconfig.Config) *Notify {
	n := &Notify{
		Enabled: len(conf.WebhookUrls) > 0,
		client:  &http.Client{Timeout: conf.WebhookTimeout},
		targets: conf.WebhookUrls,
		workers: conf.NotifyWorkers,
		q:       dstructs.NewFlQueue[model.Report](conf.NotifyQueueSize),
	}

	if !n.Enabled {
		log.Info().
			Str("evt.name", "notify.disabled").
			Msg("service: notify: no webhook targets configured, deliveries disabled")
	}

	return n
}

// PushReportCreated enqueues a new-report event. It never blocks the
// caller; when the queue is full the event is dropped.
func (s *Notify) PushReportCreated(report *model.Report) {
	if !s.Enabled {
		return
	}

	if ok := s.q.Push(report); !ok {
		observability.NotifyDeliveryOutcome.
			WithLabelValues(observability.OutcomeDropped).
			Inc()
		log.Warn().
			Str("evt.name", "notify.queue.full").
			Str("reportId", report.ID).
			Msg("service: notify: queue is full, dropping event")
	}
}

// Pending reports how many events are queued but not yet flushed.
func (s *Notify) Pending() int {
	return s.q.Len()
}

type delivery struct {
	target string
	report *model.Report
}

// DeliverPending drains the queue and posts every drained event to every
// configured target. The notify worker calls this on its tick; calling it
// with an empty queue is a no-op.
func (s *Notify) DeliverPending(ctx context.Context) (int, error) {
	reports := s.q.Flush()
	if len(reports) == 0 {
		return 0, nil
	}

	deliveries := make([]delivery, 0, len(reports)*len(s.targets))
	for _, report := range reports {
		for _, target := range s.targets {
			deliveries = append(deliveries, delivery{target: target, report: report})
		}
	}

	delivered, err := async.Map(deliveries, s.workers, func(d delivery) (string, error) {
		return s.deliver(ctx, d)
	})

	return len(delivered), err
}

func (s *Notify) deliver(ctx context.Context, d delivery) (string, error) {
	deliveryID := ulid.Make().String()

	body, err := json.Marshal(&types.NotifyMessage{
		Text: notifyText(d.report),
	})
	if err != nil {
		return deliveryID, errors.Wrap(err, "service: notify: failed to marshal message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.target, bytes.NewReader(body))
	if err != nil {
		return deliveryID, errors.Wrap(err, "service: notify: failed to build request")
	}
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(constant.NotifyEventHeader, constant.NotifyEventReportCreated)
	req.Header.Set(constant.NotifyDeliveryHeader, deliveryID)

	start := time.Now()
	resp, err := s.client.Do(req)
	observability.NotifyDeliveryDuration.
		WithLabelValues().
		Observe(time.Since(start).Seconds())

	if err == nil {
		resp.Body.Close()
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			err = errors.Errorf("unexpected status %s", resp.Status)
		}
	}

	if err != nil {
		observability.NotifyDeliveryOutcome.
			WithLabelValues(observability.OutcomeFailed).
			Inc()
		log.Error().
			Err(err).
			Str("evt.name", "notify.delivery.failed").
			Str("deliveryId", deliveryID).
			Str("target", d.target).
			Str("reportId", d.report.ID).
			Msg("service: notify: delivery failed, giving up")
		return deliveryID, errors.Wrapf(err, "deliver %s to %s", deliveryID, d.target)
	}

	observability.NotifyDeliveryOutcome.
		WithLabelValues(observability.OutcomeDelivered).
		Inc()

	return deliveryID, nil
}

func notifyText(r *model.Report) string {
	return fmt.Sprintf("New report %s from %s: %d passed, %d failed, grade %s",
		r.ID, r.Executor.Name, r.Results.Passed, r.Results.Failed, r.Grade)
}
