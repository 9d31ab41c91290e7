package model

import (
	"time"

	"github.com/goccy/go-json"
)

// Report is the persisted unit of a single test run submission.
type Report struct {
	ID       string   `json:"id" example:"7KNVQ2Z4"`
	Executor Executor `json:"executor"`

	// System and Player are free-form metadata mappings. The store never
	// interprets their contents.
	System map[string]any `json:"system"`
	Player map[string]any `json:"player,omitempty"`

	Results    Results          `json:"results"`
	Categories []map[string]any `json:"categories"`

	Grade string `json:"grade" example:"A"`

	// Duration is the elapsed run time in milliseconds.
	Duration float64 `json:"duration"`

	// CreatedAt is assigned at ingestion time and is the authoritative
	// ordering key of the store.
	CreatedAt time.Time `json:"createdAt"`

	// Timestamp is the client-asserted event time in epoch milliseconds.
	// Advisory only; zero when the submission carried none.
	Timestamp int64 `json:"timestamp,omitempty"`

	SourceAddress string `json:"sourceAddress"`

	// RawPayload retains the submitted body verbatim for full-detail views.
	RawPayload json.RawMessage `json:"rawPayload"`
}

type Executor struct {
	Name    string `json:"name" example:"pytest"`
	Version string `json:"version" example:"7.4.0"`
	Type    string `json:"type,omitempty" example:"unit"`
}

type Results struct {
	Total       int     `json:"total"`
	Passed      int     `json:"passed"`
	Failed      int     `json:"failed"`
	SuccessRate float64 `json:"successRate"`
}
