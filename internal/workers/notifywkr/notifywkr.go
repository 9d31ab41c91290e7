package notifywkr

import (
	"context"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/reporthub/backend/internal/app/appconfig"
	"github.com/reporthub/backend/internal/pkg/observability"
	"github.com/reporthub/backend/internal/service"
)

const flushInterval = time.Second

type WorkerDeps struct {
	fx.In
	NotifyService *service.Notify
}

type Worker struct {
	// count counts flushes the worker has completed so far
	count int

	WorkerDeps
}

// Start spawns the notification flush loop. Deliveries carry no guarantee:
// a failed delivery is logged and forgotten, never retried.
func Start(conf *appconfig.Config, deps WorkerDeps, lc fx.Lifecycle) {
	if !deps.NotifyService.Enabled {
		log.Info().
			Str("evt.name", "notifywkr.disabled").
			Msg("notify worker: no webhook targets configured, not starting")
		return
	}

	worker := &Worker{
		WorkerDeps: deps,
	}
	cancel := worker.do()

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(flushInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				// one final flush so accepted events queued right before
				// shutdown still get a delivery attempt
				w.flush(context.Background())
				return
			case <-ticker.C:
				w.flush(ctx)
			}
		}
	}()

	return cancel
}

func (w *Worker) flush(ctx context.Context) {
	start := time.Now()

	delivered, err := w.NotifyService.DeliverPending(ctx)

	observability.WorkerRefreshDuration.
		WithLabelValues("notify").
		Set(time.Since(start).Seconds())

	if err != nil {
		// failures are swallowed here: the per-delivery errors have already
		// been logged and counted by the notify service
		log.Debug().
			Str("evt.name", "notifywkr.flush").
			Int("count", w.count).
			Msg(spew.Sdump(err))
	}

	if delivered > 0 {
		log.Info().
			Str("evt.name", "notifywkr.flush").
			Int("count", w.count).
			Int("delivered", delivered).
			Msg("notify worker: flush finished")
	}

	w.count++
}

func (w *Worker) Count() int {
	return w.count
}
