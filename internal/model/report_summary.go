package model

import "time"

// ReportSummary is the listing projection of a Report.
type ReportSummary struct {
	ID            string    `json:"id" example:"7KNVQ2Z4"`
	ExecutorName  string    `json:"executorName" example:"pytest"`
	SuccessRate   float64   `json:"successRate"`
	Grade         string    `json:"grade" example:"A"`
	Total         int       `json:"total"`
	Passed        int       `json:"passed"`
	Failed        int       `json:"failed"`
	Duration      float64   `json:"duration"`
	CreatedAt     time.Time `json:"createdAt"`
	SourceAddress string    `json:"sourceAddress"`
}
