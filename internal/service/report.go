package service

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/reporthub/backend/internal/constant"
	"github.com/reporthub/backend/internal/model"
	"github.com/reporthub/backend/internal/model/types"
	"github.com/reporthub/backend/internal/pkg/flog"
	"github.com/reporthub/backend/internal/pkg/observability"
	"github.com/reporthub/backend/internal/pkg/rherr"
	"github.com/reporthub/backend/internal/pkg/shortid"
	"github.com/reporthub/backend/internal/repo"
	"github.com/reporthub/backend/internal/util"
	"github.com/reporthub/backend/internal/util/reportverifs"
)

type Report struct {
	ReportRepo      *repo.Report
	ReportVerifiers *reportverifs.ReportVerifiers
	NotifyService   *Notify
}

func NewReport(reportRepo *repo.Report, reportVerifiers *reportverifs.ReportVerifiers, notifyService *Notify) *Report {
	return &Report{
		ReportRepo:      reportRepo,
		ReportVerifiers: reportVerifiers,
		NotifyService:   notifyService,
	}
}

// Ingest runs one submission through verification, identifier assignment and
// persistence. A rejection leaves the store untouched and triggers no
// notification. A persistence failure is surfaced to the caller even though
// the in-memory sequence has already advanced. Notification dispatch happens
// after the store critical section and never affects the returned result.
func (s *Report) Ingest(ctx context.Context, raw []byte, sourceAddress string) (*types.ReportHandle, error) {
	start := time.Now()
	defer func() {
		observability.ReportIngestDuration.
			WithLabelValues().
			Observe(time.Since(start).Seconds())
	}()

	task := &types.ReportTask{
		TaskID:        taskID(ctx),
		Raw:           raw,
		SourceAddress: sourceAddress,
		ReceivedAt:    time.Now(),
	}

	if violation := s.ReportVerifiers.Verify(ctx, task); violation != nil {
		observability.ReportOutcome.
			WithLabelValues(observability.OutcomeRejected).
			Inc()
		log.Warn().
			Str("evt.name", "report.rejected").
			Str("taskId", task.TaskID).
			Str("verifier", violation.Name).
			Str("sourceAddress", sourceAddress).
			Msg(violation.Message)
		return nil, violation.Err
	}

	report, err := s.fold(task)
	if err != nil {
		observability.ReportOutcome.
			WithLabelValues(observability.OutcomeRejected).
			Inc()
		log.Warn().
			Err(err).
			Str("evt.name", "report.rejected").
			Str("taskId", task.TaskID).
			Str("sourceAddress", sourceAddress).
			Msg("service: report: payload passed verification but failed to decode")
		return nil, rherr.ErrMalformedPayload.Msg("report payload could not be decoded: %s", err)
	}

	id, err := shortid.NewUnique(s.ReportRepo.HasID)
	if err != nil {
		observability.ReportOutcome.
			WithLabelValues(observability.OutcomeIDExhausted).
			Inc()
		log.Error().
			Err(err).
			Str("evt.name", "report.id.exhausted").
			Str("taskId", task.TaskID).
			Msg("service: report: failed to allocate a unique report id")
		return nil, err
	}
	report.ID = id
	report.CreatedAt = time.Now()

	if err := s.ReportRepo.Append(ctx, report); err != nil {
		observability.ReportOutcome.
			WithLabelValues(observability.OutcomePersistFailed).
			Inc()
		return nil, err
	}

	observability.ReportOutcome.
		WithLabelValues(observability.OutcomeAccepted).
		Inc()
	observability.StoreReports.
		Set(float64(s.ReportRepo.Count(ctx)))

	// Append may have nudged createdAt forward to keep the sequence
	// non-decreasing, so the handle is built only after it returns.
	s.NotifyService.PushReportCreated(report)

	log.Info().
		Str("evt.name", "report.accepted").
		Str("taskId", task.TaskID).
		Str("reportId", report.ID).
		Str("executor", report.Executor.Name).
		Msg("service: report: accepted")

	return &types.ReportHandle{
		ID:        report.ID,
		CreatedAt: report.CreatedAt,
	}, nil
}

// fold decodes an already-verified payload and applies the documented
// defaults: numerics to 0, grade to the worst grade, executor version to the
// unknown sentinel. The raw body is retained verbatim.
func (s *Report) fold(task *types.ReportTask) (*model.Report, error) {
	var payload types.ReportPayload
	if err := json.Unmarshal(task.Raw, &payload); err != nil {
		return nil, err
	}

	version := payload.Executor.Version.ValueOrZero()
	if version == "" {
		version = constant.ExecutorVersionUnknown
	}

	grade := payload.Grade.ValueOrZero()
	if grade == "" {
		grade = constant.GradeWorst
	}

	categories := payload.Categories
	if categories == nil {
		categories = []map[string]any{}
	}

	return &model.Report{
		Executor: model.Executor{
			Name:    payload.Executor.Name,
			Version: version,
			Type:    payload.Executor.Type.ValueOrZero(),
		},
		System:     payload.System,
		Player:     payload.Player,
		Categories: categories,
		Results: model.Results{
			Total:       int(payload.Total.ValueOrZero()),
			Passed:      int(payload.Passes.ValueOrZero()),
			Failed:      int(payload.Fails.ValueOrZero()),
			SuccessRate: payload.SuccessRate.ValueOrZero(),
		},
		Grade:         grade,
		Duration:      util.ClampNonNegative(payload.Duration.ValueOrZero()),
		Timestamp:     payload.Timestamp.ValueOrZero(),
		SourceAddress: task.SourceAddress,
		RawPayload:    json.RawMessage(task.Raw),
	}, nil
}

// taskID correlates verifier logs with the request id when one is flowing
// through the context, and mints a fresh one otherwise (CLI, tests).
func taskID(ctx context.Context) string {
	if id, ok := flog.IDFromCtx(ctx); ok {
		return id.String()
	}
	return xid.New().String()
}
