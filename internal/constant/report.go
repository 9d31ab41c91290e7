package constant

import "time"

const (
	ReportIDLength          = 8
	ReportIDAlphabet        = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	IDGenerationMaxAttempts = 32

	// TimestampSkewTolerance is the maximum accepted deviation between a
	// report's asserted timestamp and the server receive time.
	TimestampSkewTolerance = time.Hour

	// PlausiblePassesCeiling is the pass count above which a run reporting
	// zero failures is treated as forged.
	PlausiblePassesCeiling = 1000

	GradeWorst = "F"

	ExecutorVersionUnknown = "unknown"
)

var Grades = []string{
	"A",
	"B",
	"C",
	"D",
	"F",
}

var GradeSet = map[string]struct{}{
	"A": {},
	"B": {},
	"C": {},
	"D": {},
	"F": {},
}
