package reportverifs

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/reporthub/backend/internal/model/types"
	"github.com/reporthub/backend/internal/pkg/rherr"
)

// ShapeVerifier probes the raw body with gjson so malformed payloads are
// rejected as a verdict rather than surfacing as a decode fault later.
type ShapeVerifier struct{}

// ensure ShapeVerifier conforms to Verifier
var _ Verifier = (*ShapeVerifier)(nil)

func NewShapeVerifier() *ShapeVerifier {
	return &ShapeVerifier{}
}

func (v *ShapeVerifier) Name() string {
	return "shape"
}

func (v *ShapeVerifier) Verify(ctx context.Context, task *types.ReportTask) *Rejection {
	if !gjson.ValidBytes(task.Raw) {
		return Reject(rherr.ErrMalformedPayload)
	}

	body := gjson.ParseBytes(task.Raw)
	if !body.IsObject() {
		return Reject(rherr.ErrMalformedPayload)
	}

	if name := body.Get("executor.name"); name.Type != gjson.String || name.String() == "" {
		return Reject(rherr.ErrMissingExecutor)
	}

	if system := body.Get("system"); !system.IsObject() {
		return Reject(rherr.ErrMissingSystemInfo)
	}

	if categories := body.Get("categories"); !categories.IsArray() {
		return Reject(rherr.ErrMissingCategories)
	}

	if passes := body.Get("passes"); passes.Type != gjson.Number {
		return Reject(rherr.ErrMissingResults)
	}
	if fails := body.Get("fails"); fails.Type != gjson.Number {
		return Reject(rherr.ErrMissingResults)
	}

	return nil
}
