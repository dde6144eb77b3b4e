package dto

// DashboardParams defines query parameters for the dashboard summary.
type DashboardParams struct {
	Period   string `form:"period,default=monthly" binding:"omitempty,oneof=weekly monthly yearly custom"`
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Currency string `form:"currency" binding:"omitempty,currency"`
}

// ExportParams defines query parameters for the CSV export.
type ExportParams struct {
	From     string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To       string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Currency string `form:"currency" binding:"omitempty,currency"`
}

// DisplayParams carries the optional display currency for read endpoints.
type DisplayParams struct {
	Currency string `form:"currency" binding:"omitempty,currency"`
}
