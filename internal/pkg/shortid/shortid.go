// Package shortid generates the short, human-quotable identifiers
// assigned to ingested reports.
package shortid

import (
	"github.com/dchest/uniuri"

	"github.com/reporthub/backend/internal/constant"
	"github.com/reporthub/backend/internal/pkg/rherr"
)

var alphabet = []byte(constant.ReportIDAlphabet)

// New draws a fresh id without any uniqueness guarantee.
func New() string {
	return uniuri.NewLenChars(constant.ReportIDLength, alphabet)
}

// NewUnique draws ids until exists reports one as unused, giving up after
// a bounded number of attempts so a nearly-full id space cannot spin the
// caller forever.
func NewUnique(exists func(id string) bool) (string, error) {
	for i := 0; i < constant.IDGenerationMaxAttempts; i++ {
		id := New()
		if !exists(id) {
			return id, nil
		}
	}
	return "", rherr.ErrIDGenerationExhausted
}
