package types

import "time"

// ReportTask carries one submission through the verifier chain. Raw stays
// verbatim: nothing is decoded until the task has been accepted, so a
// rejected payload is never half-interpreted.
type ReportTask struct {
	// TaskID correlates verifier logs with the ingest request.
	TaskID string `json:"taskId"`

	Raw []byte `json:"-"`

	SourceAddress string `json:"sourceAddress"`

	// ReceivedAt is the server-observed arrival time the timestamp
	// verifier measures skew against.
	ReceivedAt time.Time `json:"receivedAt"`
}
