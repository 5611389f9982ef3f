package report

type LeaveReportRow struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	LeaveTypeName string `json:"leave_type_name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalDays     int    `json:"total_days"`
	Status        string `json:"status"`
	CreatedOn     string `json:"created_on"`
}

type LeaveReportSummary struct {
	TotalRequests int `json:"total_requests"`
	Pending       int `json:"pending"`
	Approved      int `json:"approved"`
	Rejected      int `json:"rejected"`
}

type LeaveReportResponse struct {
	Summary LeaveReportSummary `json:"summary"`
	Rows    []LeaveReportRow   `json:"rows"`
}
