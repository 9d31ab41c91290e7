package statswkr

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/reporthub/backend/internal/app/appconfig"
	"github.com/reporthub/backend/internal/pkg/observability"
	"github.com/reporthub/backend/internal/service"
)

type WorkerDeps struct {
	fx.In
	SiteStatsService *service.SiteStats
}

type Worker struct {
	// count counts batches the worker has completed so far
	count int

	// interval describes the interval in-between different batches
	interval time.Duration

	WorkerDeps
}

// Start spawns the periodic site stats refresher so listings and the stats
// endpoint serve from a warm cache instead of recalculating per request.
func Start(conf *appconfig.Config, deps WorkerDeps, lc fx.Lifecycle) {
	worker := &Worker{
		interval:   conf.SiteStatsRefreshInterval,
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
		for {
			start := time.Now()

			if _, err := w.SiteStatsService.RefreshSiteStats(ctx); err != nil {
				log.Error().
					Err(err).
					Str("evt.name", "statswkr.refresh").
					Int("count", w.count).
					Msg("stats worker: refresh failed")
			} else {
				log.Debug().
					Str("evt.name", "statswkr.refresh").
					Int("count", w.count).
					Msg("stats worker: refresh finished")
			}

			observability.WorkerRefreshDuration.
				WithLabelValues("site_stats").
				Set(time.Since(start).Seconds())

			w.count++

			select {
			case <-ctx.Done():
				return
			case <-time.After(w.interval):
			}
		}
	}()

	return cancel
}

func (w *Worker) Count() int {
	return w.count
}
