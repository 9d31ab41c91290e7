package types

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// ReportPayload is the loose decode target for an accepted submission body.
// Every field except executor.name may be absent; folding into model.Report
// applies the documented defaults.
type ReportPayload struct {
	Executor PayloadExecutor `json:"executor"`

	System map[string]any `json:"system"`
	Player map[string]any `json:"player"`

	Passes      null.Int   `json:"passes"`
	Fails       null.Int   `json:"fails"`
	Total       null.Int   `json:"total"`
	SuccessRate null.Float `json:"successRate"`

	Categories []map[string]any `json:"categories"`

	Grade    null.String `json:"grade"`
	Duration null.Float  `json:"duration"`

	// Timestamp is the client-asserted event time in epoch milliseconds.
	Timestamp null.Int `json:"timestamp"`
}

type PayloadExecutor struct {
	Name    string      `json:"name"`
	Version null.String `json:"version"`
	Type    null.String `json:"type"`
}

// ReportHandle is what ingestion hands back to the caller: just enough to
// build response links.
type ReportHandle struct {
	ID        string    `json:"id" example:"7KNVQ2Z4"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReportCreatedResponse struct {
	ID        string    `json:"id" example:"7KNVQ2Z4"`
	Link      string    `json:"link" example:"/report/7KNVQ2Z4/json"`
	ViewLink  string    `json:"viewLink" example:"/report/7KNVQ2Z4"`
	CreatedAt time.Time `json:"createdAt"`
}
