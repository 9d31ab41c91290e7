package model

// RenderModel carries everything the HTML report view needs, precomputed so
// the template stays logic-free.
type RenderModel struct {
	ID           string
	ExecutorName string
	ExecutorLine string

	Total       int
	Passed      int
	Failed      int
	SuccessRate float64

	// PassRateClass is one of "good", "warn", "bad".
	PassRateClass string
	// SuccessRatePercent is the display form of SuccessRate.
	SuccessRatePercent string

	Grade string
	// GradeClass is "grade-a" through "grade-f".
	GradeClass string

	// DurationHuman and CreatedAtHuman hold humanized forms next to the
	// exact values.
	Duration       float64
	DurationHuman  string
	CreatedAt      string
	CreatedAtHuman string

	SourceAddress string
	SourceCountry string

	System     []KV
	Player     []KV
	Categories []CategoryRender

	RawPayloadPretty string
}

// KV is a single rendered metadata pair. Slices of KV keep template
// iteration ordered, which a map would not.
type KV struct {
	Key   string
	Value string
}

type CategoryRender struct {
	Name   string
	Fields []KV
}
