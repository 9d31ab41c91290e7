package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/reporthub/backend/internal/app/appconfig"
	"github.com/reporthub/backend/internal/infra"
	"github.com/reporthub/backend/internal/model"
	"github.com/reporthub/backend/internal/model/cache"
	"github.com/reporthub/backend/internal/repo"
	"github.com/reporthub/backend/internal/util/reportverifs"
)

func testConfig(t *testing.T) *appconfig.Config {
	t.Helper()

	return &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			DataFile:        filepath.Join(t.TempDir(), "reports.json"),
			WebhookTimeout:  time.Second,
			NotifyWorkers:   2,
			NotifyQueueSize: 8,
		},
	}
}

func testStore(t *testing.T, conf *appconfig.Config) *repo.Report {
	t.Helper()

	datafile, err := infra.NewDataFile(conf)
	require.NoError(t, err)

	store, err := repo.NewReport(datafile)
	require.NoError(t, err)

	return store
}

// newTestReport wires the full ingestion service against a temp-file store.
func newTestReport(t *testing.T) (*Report, *repo.Report) {
	t.Helper()

	conf := testConfig(t)
	store := testStore(t, conf)

	verifiers := reportverifs.NewReportVerifier(
		reportverifs.NewShapeVerifier(),
		reportverifs.NewPlausibilityVerifier(),
		reportverifs.NewTimestampVerifier(),
		reportverifs.NewRejectRuleVerifier(conf),
	)

	return NewReport(store, verifiers, NewNotify(conf)), store
}

func seedReport(t *testing.T, store *repo.Report, id, executor, grade string, passed, failed int, createdAt time.Time) *model.Report {
	t.Helper()

	report := &model.Report{
		ID: id,
		Executor: model.Executor{
			Name:    executor,
			Version: "1.0.0",
		},
		System: map[string]any{"os": "linux"},
		Results: model.Results{
			Passed: passed,
			Failed: failed,
		},
		Categories:    []map[string]any{},
		Grade:         grade,
		Duration:      100,
		CreatedAt:     createdAt,
		SourceAddress: "127.0.0.1",
		RawPayload:    json.RawMessage(`{"executor":{"name":"` + executor + `"}}`),
	}
	require.NoError(t, store.Append(context.Background(), report))

	return report
}

func init() {
	cache.Initialize()
}
