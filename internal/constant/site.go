package constant

import "time"

const (
	SiteStatsCacheKey = "siteStats"
	SiteStatsCacheTTL = time.Minute

	// RenderModelCacheTTL bounds how stale the humanized relative times on
	// a cached report page may get.
	RenderModelCacheTTL = time.Minute

	// PassRateGoodThreshold and PassRateWarnThreshold split rendered reports
	// into ok / warn / bad bands on the HTML view.
	PassRateGoodThreshold = 0.9
	PassRateWarnThreshold = 0.6
)
