package appconfig

import (
	"time"

	"github.com/reporthub/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving normal service requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9280"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// TrustedProxies is a list of trusted proxies that are trusted to report a real IP via the X-Forwarded-For header.
	TrustedProxies []string `required:"true" split_words:"true" default:"::1,127.0.0.1,10.0.0.0/8"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic. See internal/server/httpserver/http.go for the
	// actual implementation details.
	DevMode bool `split_words:"true"`

	// TracingEnabled to indicate whether to enable OpenTelemetry tracing.
	TracingEnabled bool `split_words:"true"`

	// TracingExporters to indicate which exporters to use for tracing.
	// Valid values are: otlp, stdout (for debug).
	TracingExporters []string `split_words:"true" default:"stdout"`

	// TracingSampleRate to indicate the sampling rate for tracing.
	// Valid values are: 0.0 (disabled), 1.0 (all traces), or a value between 0.0 and 1.0 (sampling rate).
	TracingSampleRate float64 `split_words:"true" default:"1.0"`

	// infrastructure components connection instructions

	// DataFile is the path of the JSON file the report store persists to. The path is created on
	// first write when it does not exist yet. Relative paths resolve against the working directory.
	DataFile string `required:"true" split_words:"true" default:"data/reports.json"`

	// StaticDir is the directory served under /static for report page assets.
	StaticDir string `split_words:"true" default:"web/static"`

	// BaseURL prefixes the links returned on report creation, e.g.
	// https://reports.example.com. Leave empty for host-relative links.
	BaseURL string `split_words:"true"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// GeoIPDBPath is the path of a MaxMind GeoLite2 Country database. When left empty,
	// country annotation of incoming reports is simply disabled.
	GeoIPDBPath string `split_words:"true"`

	// WebhookUrls is the list of chat webhook endpoints to deliver new-report events to.
	// Leaving this empty will disable webhook notifications.
	WebhookUrls []string `split_words:"true"`

	// WebhookTimeout is the per-delivery timeout of the webhook HTTP client.
	WebhookTimeout time.Duration `split_words:"true" default:"5s"`

	// NotifyWorkers is the number of concurrent webhook deliveries dispatched per flush.
	NotifyWorkers int `split_words:"true" default:"4"`

	// NotifyQueueSize is the capacity of the pending notification queue. Events arriving
	// while the queue is full are dropped: deliveries carry no guarantee.
	NotifyQueueSize int `split_words:"true" default:"256"`

	// RejectRules is a list of expr programs evaluated against every incoming report.
	// A report matching any rule is rejected. See internal/util/reportverifs for the
	// evaluation environment.
	RejectRules RejectRuleList `split_words:"true"`

	// SiteStatsRefreshInterval describes the interval in-between site stats recalculations.
	SiteStatsRefreshInterval time.Duration `required:"true" split_words:"true" default:"1m"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`

	// DatadogProfilerEnabled to indicate whether to enable Datadog profiler.
	DatadogProfilerEnabled bool `split_words:"true" default:"false"`

	// DatadogProfilerAgentAddress is the address of the Datadog profiler agent.
	DatadogProfilerAgentAddress string `split_words:"true" default:"localhost:8126"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
