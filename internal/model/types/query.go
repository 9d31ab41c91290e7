package types

// ReportListQuery is the query surface of the listing endpoint. Zero values
// mean "not supplied" and fall back to the documented defaults.
type ReportListQuery struct {
	Page  int `query:"page" validate:"omitempty,min=1" example:"1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=200" example:"50"`

	// Executor and Grade narrow the listing; both are optional.
	Executor string `query:"executor" validate:"omitempty,max=128" example:"pytest"`
	Grade    string `query:"grade" validate:"grade" example:"A"`
}
