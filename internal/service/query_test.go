package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reporthub/backend/internal/model/types"
	"github.com/reporthub/backend/internal/pkg/rherr"
	"github.com/reporthub/backend/internal/repo"
)

func newTestQuery(t *testing.T) (*Query, *repo.Report) {
	t.Helper()

	store := testStore(t, testConfig(t))
	return NewQuery(store, NewGeoIP(nil)), store
}

func TestListSummariesNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestQuery(t)

	base := time.Now()
	seedReport(t, store, "QRYLST01", "pytest", "A", 10, 0, base.Add(-3*time.Hour))
	seedReport(t, store, "QRYLST02", "gotest", "B", 8, 2, base.Add(-time.Hour))
	seedReport(t, store, "QRYLST03", "pytest", "C", 6, 4, base)

	summaries, total, err := svc.ListSummaries(ctx, &types.ReportListQuery{})
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	require.Len(t, summaries, 3)
	assert.Equal(t, "QRYLST03", summaries[0].ID)

	for i := 1; i < len(summaries); i++ {
		assert.False(t, summaries[i-1].CreatedAt.Before(summaries[i].CreatedAt))
	}
}

func TestListSummariesPagination(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestQuery(t)

	base := time.Now()
	ids := []string{"QRYPAG01", "QRYPAG02", "QRYPAG03", "QRYPAG04", "QRYPAG05"}
	for i, id := range ids {
		seedReport(t, store, id, "pytest", "A", 1, 0, base.Add(time.Duration(i)*time.Minute))
	}

	page1, total, err := svc.ListSummaries(ctx, &types.ReportListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page1, 2)
	assert.Equal(t, "QRYPAG05", page1[0].ID)
	assert.Equal(t, "QRYPAG04", page1[1].ID)

	page3, total, err := svc.ListSummaries(ctx, &types.ReportListQuery{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page3, 1)
	assert.Equal(t, "QRYPAG01", page3[0].ID)

	beyond, total, err := svc.ListSummaries(ctx, &types.ReportListQuery{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, beyond)
}

func TestListSummariesFilters(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestQuery(t)

	base := time.Now()
	seedReport(t, store, "QRYFLT01", "pytest", "A", 10, 0, base)
	seedReport(t, store, "QRYFLT02", "gotest", "B", 8, 2, base)
	seedReport(t, store, "QRYFLT03", "pytest", "B", 6, 4, base)

	byExecutor, total, err := svc.ListSummaries(ctx, &types.ReportListQuery{Executor: "pytest"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, s := range byExecutor {
		assert.Equal(t, "pytest", s.ExecutorName)
	}

	byGrade, total, err := svc.ListSummaries(ctx, &types.ReportListQuery{Grade: "B"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, s := range byGrade {
		assert.Equal(t, "B", s.Grade)
	}
}

func TestGetReportByIDUnknown(t *testing.T) {
	svc, _ := newTestQuery(t)

	_, err := svc.GetReportByID(context.Background(), "UNKNOWN123")
	assert.ErrorIs(t, err, rherr.ErrReportNotFound)
}

func TestGetRenderModel(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestQuery(t)

	seedReport(t, store, "QRYRDM01", "pytest", "A", 9, 1, time.Now())

	rm, err := svc.GetRenderModel(ctx, "QRYRDM01")
	require.NoError(t, err)

	assert.Equal(t, "QRYRDM01", rm.ID)
	assert.Equal(t, "pytest", rm.ExecutorName)
	assert.Equal(t, "pytest 1.0.0", rm.ExecutorLine)
	assert.Equal(t, "grade-a", rm.GradeClass)
	// no successRate was supplied, so the display rate falls back to the
	// observed pass ratio
	assert.Equal(t, 0.9, rm.SuccessRate)
	assert.Equal(t, "good", rm.PassRateClass)
	assert.Empty(t, rm.SourceCountry)
	assert.NotEmpty(t, rm.RawPayloadPretty)
	require.Len(t, rm.System, 1)
	assert.Equal(t, "os", rm.System[0].Key)
	assert.Equal(t, "linux", rm.System[0].Value)
}

func TestGetRenderModelUnknown(t *testing.T) {
	svc, _ := newTestQuery(t)

	_, err := svc.GetRenderModel(context.Background(), "UNKNOWN123")
	assert.ErrorIs(t, err, rherr.ErrReportNotFound)
}

func TestPassRateClassThresholds(t *testing.T) {
	cases := []struct {
		rate float64
		want string
	}{
		{1, "good"},
		{0.9, "good"},
		{0.89, "warn"},
		{0.6, "warn"},
		{0.59, "bad"},
		{0, "bad"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, passRateClass(c.rate), "rate %v", c.rate)
	}
}

func TestGradeClassFallsBackToWorst(t *testing.T) {
	assert.Equal(t, "grade-b", gradeClass("B"))
	assert.Equal(t, "grade-f", gradeClass("F"))
	// labels outside the known set paint as the worst grade
	assert.Equal(t, "grade-f", gradeClass("Z"))
	assert.Equal(t, "grade-f", gradeClass(""))
}
