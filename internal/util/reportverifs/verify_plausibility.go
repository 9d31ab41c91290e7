package reportverifs

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/reporthub/backend/internal/constant"
	"github.com/reporthub/backend/internal/model/types"
	"github.com/reporthub/backend/internal/pkg/rherr"
)

// PlausibilityVerifier is a heuristic anti-forgery check, not a correctness
// proof: a run claiming over a thousand passes without a single failure has
// in practice always been a fabricated payload.
type PlausibilityVerifier struct{}

// ensure PlausibilityVerifier conforms to Verifier
var _ Verifier = (*PlausibilityVerifier)(nil)

func NewPlausibilityVerifier() *PlausibilityVerifier {
	return &PlausibilityVerifier{}
}

func (v *PlausibilityVerifier) Name() string {
	return "plausibility"
}

func (v *PlausibilityVerifier) Verify(ctx context.Context, task *types.ReportTask) *Rejection {
	passes := gjson.GetBytes(task.Raw, "passes").Int()
	fails := gjson.GetBytes(task.Raw, "fails").Int()

	if passes > constant.PlausiblePassesCeiling && fails == 0 {
		return Reject(rherr.ErrImplausibleResults)
	}

	return nil
}
