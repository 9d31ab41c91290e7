package constant

const (
	NotifyEventReportCreated = "report.created"

	NotifyEventHeader    = "X-ReportHub-Event"
	NotifyDeliveryHeader = "X-ReportHub-Delivery"
)
