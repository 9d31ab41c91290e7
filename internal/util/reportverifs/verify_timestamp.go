package reportverifs

import (
	"context"
	"time"

	"github.com/tidwall/gjson"

	"github.com/reporthub/backend/internal/constant"
	"github.com/reporthub/backend/internal/model/types"
	"github.com/reporthub/backend/internal/pkg/rherr"
)

// TimestampVerifier bounds the client-asserted event time against the server
// receive time. Both sides are treated as UTC epoch millis; a client
// legitimately reporting local time instead will be rejected once the offset
// exceeds the tolerance.
type TimestampVerifier struct{}

// ensure TimestampVerifier conforms to Verifier
var _ Verifier = (*TimestampVerifier)(nil)

func NewTimestampVerifier() *TimestampVerifier {
	return &TimestampVerifier{}
}

func (v *TimestampVerifier) Name() string {
	return "timestamp"
}

func (v *TimestampVerifier) Verify(ctx context.Context, task *types.ReportTask) *Rejection {
	timestamp := gjson.GetBytes(task.Raw, "timestamp")
	if !timestamp.Exists() {
		return nil
	}

	asserted := time.UnixMilli(timestamp.Int())
	skew := task.ReceivedAt.Sub(asserted)
	if skew < 0 {
		skew = -skew
	}

	if skew > constant.TimestampSkewTolerance {
		return Reject(rherr.ErrTimestampOutOfBounds)
	}

	return nil
}
