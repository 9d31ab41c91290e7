package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reporthub/backend/internal/model/cache"
)

func TestSiteStatsAggregation(t *testing.T) {
	ctx := context.Background()
	store := testStore(t, testConfig(t))
	svc := NewSiteStats(store)

	base := time.Now()
	seedReport(t, store, "STATS001", "pytest", "A", 10, 0, base.Add(-48*time.Hour))
	seedReport(t, store, "STATS002", "pytest", "B", 8, 2, base.Add(-time.Hour))
	seedReport(t, store, "STATS003", "gotest", "C", 5, 5, base)

	stats, err := svc.RefreshSiteStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalReports)
	assert.Equal(t, 2, stats.Reports24h)
	assert.Equal(t, 23, stats.TotalPassed)
	assert.Equal(t, 7, stats.TotalFailed)

	require.Len(t, stats.PerExecutor, 2)
	// sorted by report count descending
	assert.Equal(t, "pytest", stats.PerExecutor[0].Name)
	assert.Equal(t, 2, stats.PerExecutor[0].Reports)
	assert.Equal(t, 18, stats.PerExecutor[0].Passed)
	assert.Equal(t, 2, stats.PerExecutor[0].Failed)
	assert.Equal(t, "gotest", stats.PerExecutor[1].Name)
}

func TestSiteStatsEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := testStore(t, testConfig(t))
	svc := NewSiteStats(store)

	stats, err := svc.RefreshSiteStats(ctx)
	require.NoError(t, err)

	assert.Zero(t, stats.TotalReports)
	assert.NotNil(t, stats.PerExecutor)
	assert.Empty(t, stats.PerExecutor)
}

func TestGetSiteStatsServesFromCache(t *testing.T) {
	ctx := context.Background()
	store := testStore(t, testConfig(t))
	svc := NewSiteStats(store)

	require.NoError(t, cache.SiteStats.Delete())

	seedReport(t, store, "STATS101", "pytest", "A", 1, 0, time.Now())

	first, err := svc.GetSiteStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, first.TotalReports)

	// a second read within the TTL serves the cached aggregate even though
	// the store has moved on
	seedReport(t, store, "STATS102", "pytest", "A", 1, 0, time.Now())

	second, err := svc.GetSiteStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, second.TotalReports)

	// an explicit refresh observes the new report
	refreshed, err := svc.RefreshSiteStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed.TotalReports)
}
