package types

type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Reports int    `json:"reports"`
	Uptime  string `json:"uptime" example:"1h2m3s"`
	Version string `json:"version" example:"v0.0.0"`
}
