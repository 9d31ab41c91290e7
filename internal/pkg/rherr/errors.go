package rherr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternalError  = "INTERNAL_ERROR"

	CodeMalformedPayload      = "MALFORMED_PAYLOAD"
	CodeMissingExecutor       = "MISSING_EXECUTOR"
	CodeMissingSystemInfo     = "MISSING_SYSTEM_INFO"
	CodeMissingCategories     = "MISSING_CATEGORIES"
	CodeMissingResults        = "MISSING_RESULTS"
	CodeImplausibleResults    = "IMPLAUSIBLE_RESULTS"
	CodeTimestampOutOfBounds  = "TIMESTAMP_OUT_OF_BOUNDS"
	CodeRejectedByRule        = "REJECTED_BY_RULE"
	CodePersistenceFailed     = "PERSISTENCE_FAILED"
	CodeIDGenerationExhausted = "ID_GENERATION_EXHAUSTED"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrReportNotFound is returned when a report lookup misses.
	ErrReportNotFound = New(fiber.StatusNotFound, CodeNotFound, "Report not found")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")

	// ErrMalformedPayload is returned when the submitted body is not a JSON object.
	ErrMalformedPayload = New(fiber.StatusBadRequest, CodeMalformedPayload, "report payload is not a JSON object")

	// ErrMissingExecutor is returned when the executor name is absent or empty.
	ErrMissingExecutor = New(fiber.StatusBadRequest, CodeMissingExecutor, "report is missing executor name")

	// ErrMissingSystemInfo is returned when the system section is absent or malformed.
	ErrMissingSystemInfo = New(fiber.StatusBadRequest, CodeMissingSystemInfo, "report is missing system information")

	// ErrMissingCategories is returned when the categories section is absent or malformed.
	ErrMissingCategories = New(fiber.StatusBadRequest, CodeMissingCategories, "report is missing result categories")

	// ErrMissingResults is returned when pass/fail counters are absent or non-numeric.
	ErrMissingResults = New(fiber.StatusBadRequest, CodeMissingResults, "report is missing pass/fail result counters")

	// ErrImplausibleResults is returned when result counters fail the plausibility heuristic.
	ErrImplausibleResults = New(fiber.StatusBadRequest, CodeImplausibleResults, "report results are implausible")

	// ErrTimestampOutOfBounds is returned when the client-asserted timestamp deviates
	// from the server receive time beyond the accepted tolerance.
	ErrTimestampOutOfBounds = New(fiber.StatusBadRequest, CodeTimestampOutOfBounds, "report timestamp is out of accepted bounds")

	// ErrRejectedByRule is returned when an operator-supplied reject rule matched.
	ErrRejectedByRule = New(fiber.StatusBadRequest, CodeRejectedByRule, "report rejected by operator rule")

	// ErrPersistFailed is returned when the report could not be written to the mirror file.
	ErrPersistFailed = New(fiber.StatusInternalServerError, CodePersistenceFailed, "report accepted in memory but could not be persisted")

	// ErrIDGenerationExhausted is returned when no unique report id could be drawn
	// within the bounded number of attempts.
	ErrIDGenerationExhausted = New(fiber.StatusInternalServerError, CodeIDGenerationExhausted, "could not allocate a unique report id")
)

type Extras map[string]interface{}

type HubError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"INVALID_REQUEST"`
	Message    string `example:"invalid request: some or all request parameters are invalid"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *HubError {
	return &HubError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e HubError) Msg(format string, parts ...interface{}) *HubError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e HubError) WithExtras(extras Extras) *HubError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations interface{}) *HubError {
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *HubError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
