package report

import "time"

// The report date stays a plain string on the form DTO: blank and
// malformed values must reach the handler's own ordering of error
// messages instead of failing at bind time.
type CreateReportForm struct {
	ReportDate string `form:"report_date"`
	Title      string `form:"title" binding:"required,max=100"`
	Content    string `form:"content" binding:"required,max=600"`
}

type UpdateReportForm struct {
	ReportDate string `form:"report_date"`
	Title      string `form:"title" binding:"required,max=100"`
	Content    string `form:"content" binding:"required,max=600"`
}

type CreateReportRequest struct {
	EmployeeCode string
	ReportDate   time.Time
	Title        string
	Content      string
}

type UpdateReportRequest struct {
	ReportDate time.Time
	Title      string
	Content    string
}

type ReportResponse struct {
	ID           uint64
	ReportDate   string
	Title        string
	Content      string
	EmployeeCode string
	EmployeeName string
	CreatedAt    string
	UpdatedAt    string
}
