package reportverifs

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/reporthub/backend/internal/model/types"
	"github.com/reporthub/backend/internal/pkg/observability"
)

var tracer = otel.Tracer("reportverifs")

type Verifier interface {
	Name() string
	Verify(ctx context.Context, task *types.ReportTask) *Rejection
}

type ReportVerifiers []Verifier

// NewReportVerifier wires the verifiers in evaluation order: cheap structural
// checks first, operator rules last.
func NewReportVerifier(shapeVerifier *ShapeVerifier, plausibilityVerifier *PlausibilityVerifier, timestampVerifier *TimestampVerifier, rejectRuleVerifier *RejectRuleVerifier) *ReportVerifiers {
	return &ReportVerifiers{
		shapeVerifier,
		plausibilityVerifier,
		timestampVerifier,
		rejectRuleVerifier,
	}
}

// Verify runs the task through every verifier and returns the first
// violation, or nil when the task passed the whole chain. The task is never
// mutated.
func (verifiers ReportVerifiers) Verify(ctx context.Context, task *types.ReportTask) *Violation {
	for _, pipe := range verifiers {
		start := time.Now()

		name := pipe.Name()

		ctx, span := tracer.
			Start(ctx, "reportverifs.verifier."+name)

		rejection := pipe.Verify(ctx, task)
		span.End()

		observability.ReportVerifyDuration.
			WithLabelValues(name).
			Observe(time.Since(start).Seconds())

		if rejection != nil {
			return &Violation{
				Name:      name,
				Rejection: *rejection,
			}
		}
	}

	return nil
}
