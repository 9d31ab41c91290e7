package model

type SiteStats struct {
	TotalReports int `json:"totalReports"`
	Reports24h   int `json:"reports24h"`
	TotalPassed  int `json:"totalPassed"`
	TotalFailed  int `json:"totalFailed"`

	PerExecutor []ExecutorStats `json:"perExecutor"`
}

type ExecutorStats struct {
	Name    string `json:"name" example:"pytest"`
	Reports int    `json:"reports"`
	Passed  int    `json:"passed"`
	Failed  int    `json:"failed"`
}
