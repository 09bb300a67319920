package models

// Stats is the dashboard headline block from /stats.
type Stats struct {
	TotalStudents int     `json:"totalStudents"`
	TotalTeachers int     `json:"totalTeachers"`
	TotalProducts int     `json:"totalProducts"`
	TotalInvoices int     `json:"totalInvoices"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalDue      float64 `json:"totalDue"`
}

// OverviewPoint is one bucket of the invoice overview chart from
// /invoices/overview/data.
type OverviewPoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// StudentBalance is one row of /invoices/students/balances.
type StudentBalance struct {
	User      User    `json:"user"`
	Balance   float64 `json:"balance"`
	DueAmount float64 `json:"dueAmount"`
}
