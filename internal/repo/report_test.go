package repo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reporthub/backend/internal/app/appconfig"
	"github.com/reporthub/backend/internal/infra"
	"github.com/reporthub/backend/internal/model"
	"github.com/reporthub/backend/internal/pkg/rherr"
)

func testDataFile(t *testing.T) *infra.DataFile {
	t.Helper()

	conf := &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			DataFile: filepath.Join(t.TempDir(), "reports.json"),
		},
	}

	datafile, err := infra.NewDataFile(conf)
	require.NoError(t, err)

	return datafile
}

func testReport(id string, createdAt time.Time) *model.Report {
	return &model.Report{
		ID: id,
		Executor: model.Executor{
			Name:    "pytest",
			Version: "7.4.0",
		},
		System: map[string]any{"os": "linux"},
		Results: model.Results{
			Passed: 10,
			Failed: 2,
		},
		Categories: []map[string]any{},
		Grade:      "A",
		Duration:   1234.5,
		CreatedAt:  createdAt,
		Timestamp:  createdAt.UnixMilli(),

		SourceAddress: "127.0.0.1",
		RawPayload:    json.RawMessage(`{"executor":{"name":"pytest"}}`),
	}
}

func TestReportStartsEmpty(t *testing.T) {
	store, err := NewReport(testDataFile(t))
	require.NoError(t, err)

	assert.Equal(t, 0, store.Count(context.Background()))
	assert.Empty(t, store.List(context.Background()))
}

func TestReportStartsEmptyOnUnparseableMirror(t *testing.T) {
	datafile := testDataFile(t)
	require.NoError(t, os.WriteFile(datafile.Path(), []byte(`{definitely not json`), 0o644))

	store, err := NewReport(datafile)
	require.NoError(t, err)

	assert.Equal(t, 0, store.Count(context.Background()))
}

func TestReportAppendGet(t *testing.T) {
	ctx := context.Background()

	store, err := NewReport(testDataFile(t))
	require.NoError(t, err)

	want := testReport("AAAA1111", time.Now())
	require.NoError(t, store.Append(ctx, want))

	got, err := store.GetByID(ctx, "AAAA1111")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// reads are idempotent
	again, err := store.GetByID(ctx, "AAAA1111")
	require.NoError(t, err)
	assert.Equal(t, got, again)

	assert.True(t, store.HasID("AAAA1111"))
	assert.False(t, store.HasID("BBBB2222"))
	assert.Equal(t, 1, store.Count(ctx))
}

func TestReportGetUnknown(t *testing.T) {
	store, err := NewReport(testDataFile(t))
	require.NoError(t, err)

	_, err = store.GetByID(context.Background(), "UNKNOWN1")
	assert.ErrorIs(t, err, rherr.ErrReportNotFound)
}

func TestReportListNewestFirst(t *testing.T) {
	ctx := context.Background()

	store, err := NewReport(testDataFile(t))
	require.NoError(t, err)

	base := time.Now()
	require.NoError(t, store.Append(ctx, testReport("OLDEST11", base.Add(-2*time.Hour))))
	require.NoError(t, store.Append(ctx, testReport("NEWEST11", base)))
	require.NoError(t, store.Append(ctx, testReport("MIDDLE11", base.Add(-time.Hour))))

	list := store.List(ctx)
	require.Len(t, list, 3)

	assert.Equal(t, "NEWEST11", list[0].ID)
	assert.Equal(t, "MIDDLE11", list[1].ID)
	assert.Equal(t, "OLDEST11", list[2].ID)

	for i := 1; i < len(list); i++ {
		assert.False(t, list[i-1].CreatedAt.Before(list[i].CreatedAt))
	}
}

func TestReportSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	datafile := testDataFile(t)

	store, err := NewReport(datafile)
	require.NoError(t, err)

	want := testReport("ROUNDTRP", time.Now())
	require.NoError(t, store.Append(ctx, want))

	reopened, err := NewReport(datafile)
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Count(ctx))

	got, err := reopened.GetByID(ctx, "ROUNDTRP")
	require.NoError(t, err)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Executor, got.Executor)
	assert.Equal(t, want.System, got.System)
	assert.Equal(t, want.Results, got.Results)
	assert.Equal(t, want.Grade, got.Grade)
	assert.Equal(t, want.Duration, got.Duration)
	assert.Equal(t, want.Timestamp, got.Timestamp)
	assert.Equal(t, want.SourceAddress, got.SourceAddress)
	assert.JSONEq(t, string(want.RawPayload), string(got.RawPayload))
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
}

func TestReportReload(t *testing.T) {
	ctx := context.Background()
	datafile := testDataFile(t)

	store, err := NewReport(datafile)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, testReport("RELOAD11", time.Now())))

	// another store instance writes one more report to the same mirror
	other, err := NewReport(datafile)
	require.NoError(t, err)
	require.NoError(t, other.Append(ctx, testReport("RELOAD22", time.Now())))

	require.NoError(t, store.Reload())
	assert.Equal(t, 2, store.Count(ctx))
	assert.True(t, store.HasID("RELOAD22"))
}
