package constant

const (
	ContextKeyRequestID = "requestid"

	RequestIDHeader = "X-ReportHub-Request-ID"

	TotalCountHeader = "X-Total-Count"
)
