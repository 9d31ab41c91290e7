package reportverifs

import "github.com/reporthub/backend/internal/pkg/rherr"

// Rejection is a verifier's verdict on a single task. Err carries the
// response the submitter receives; Message duplicates its human-readable
// text for logs.
type Rejection struct {
	Err     *rherr.HubError `json:"-"`
	Message string          `json:"message"`
}

type Violation struct {
	Rejection
	Name string `json:"name"`
}

// Reject wraps a domain error into a Rejection.
func Reject(err *rherr.HubError) *Rejection {
	return &Rejection{
		Err:     err,
		Message: err.Message,
	}
}
