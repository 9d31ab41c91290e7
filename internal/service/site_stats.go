package service

import (
	"context"
	"time"

	linq "github.com/ahmetb/go-linq/v3"

	"github.com/reporthub/backend/internal/constant"
	"github.com/reporthub/backend/internal/model"
	"github.com/reporthub/backend/internal/model/cache"
	"github.com/reporthub/backend/internal/pkg/observability"
	"github.com/reporthub/backend/internal/repo"
)

type SiteStats struct {
	ReportRepo *repo.Report
}

func NewSiteStats(reportRepo *repo.Report) *SiteStats {
	return &SiteStats{
		ReportRepo: reportRepo,
	}
}

// Cache: siteStats, 1m
func (s *SiteStats) GetSiteStats(ctx context.Context) (*model.SiteStats, error) {
	var stats model.SiteStats
	err := cache.SiteStats.MutexGetSet(&stats, func() (model.SiteStats, error) {
		return s.RefreshSiteStats(ctx)
	}, constant.SiteStatsCacheTTL)
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// RefreshSiteStats recalculates the aggregate view from a store snapshot,
// refreshes the cache and the store size gauge, and stamps the last-modified
// time the stats endpoint advertises.
func (s *SiteStats) RefreshSiteStats(ctx context.Context) (model.SiteStats, error) {
	stats := s.calcSiteStats(ctx)

	cache.SiteStats.Set(stats, constant.SiteStatsCacheTTL)
	cache.LastModifiedTime.Set("["+constant.SiteStatsCacheKey+"]", time.Now(), 0)

	observability.StoreReports.Set(float64(stats.TotalReports))

	return stats, nil
}

func (s *SiteStats) calcSiteStats(ctx context.Context) model.SiteStats {
	reports := s.ReportRepo.List(ctx)

	stats := model.SiteStats{
		TotalReports: len(reports),
		PerExecutor:  []model.ExecutorStats{},
	}

	dayAgo := time.Now().Add(-24 * time.Hour)
	for _, report := range reports {
		if report.CreatedAt.After(dayAgo) {
			stats.Reports24h++
		}
		stats.TotalPassed += report.Results.Passed
		stats.TotalFailed += report.Results.Failed
	}

	linq.From(reports).
		GroupByT(
			func(r *model.Report) string { return r.Executor.Name },
			func(r *model.Report) *model.Report { return r },
		).
		SelectT(func(g linq.Group) model.ExecutorStats {
			es := model.ExecutorStats{
				Name: g.Key.(string),
			}
			for _, v := range g.Group {
				r := v.(*model.Report)
				es.Reports++
				es.Passed += r.Results.Passed
				es.Failed += r.Results.Failed
			}
			return es
		}).
		OrderByDescendingT(func(es model.ExecutorStats) int { return es.Reports }).
		ThenByT(func(es model.ExecutorStats) string { return es.Name }).
		ToSlice(&stats.PerExecutor)

	if stats.PerExecutor == nil {
		stats.PerExecutor = []model.ExecutorStats{}
	}

	return stats
}
