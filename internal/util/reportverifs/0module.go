package reportverifs

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("reportverifs", fx.Provide(
		NewShapeVerifier,
		NewPlausibilityVerifier,
		NewTimestampVerifier,
		NewRejectRuleVerifier,
		NewReportVerifier,
	))
}
