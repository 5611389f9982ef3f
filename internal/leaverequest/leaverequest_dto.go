package leaverequest

import "time"

type ApplyLeaveRequest struct {
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason"`
}

type DecideLeaveRequest struct {
	Comment string `json:"comment"`
}

// LeaveRequestResponse always carries every field; "not applicable" is the
// empty string, never an absent key.
type LeaveRequestResponse struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name"`
	LeaveTypeID    string `json:"leave_type_id"`
	LeaveTypeName  string `json:"leave_type_name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	TotalDays      int    `json:"total_days"`
	Reason         string `json:"reason"`
	Status         string `json:"status"`
	ManagerComment string `json:"manager_comment"`
	CreatedOn      string `json:"created_on"`
	DecisionOn     string `json:"decision_on"`
}

func mapToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:             lr.ID.String(),
		EmployeeID:     lr.EmployeeID.String(),
		EmployeeName:   lr.EmployeeName,
		LeaveTypeID:    lr.LeaveTypeID.String(),
		LeaveTypeName:  lr.LeaveTypeName,
		StartDate:      lr.StartDate.Format("2006-01-02"),
		EndDate:        lr.EndDate.Format("2006-01-02"),
		TotalDays:      lr.TotalDays,
		Reason:         lr.Notes,
		Status:         lr.Status,
		ManagerComment: lr.ManagerComment,
		CreatedOn:      lr.CreatedOn.Format("2006-01-02"),
	}
	if lr.DecisionOn != nil {
		resp.DecisionOn = lr.DecisionOn.Format("2006-01-02")
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, lr := range requests {
		resp[i] = mapToResponse(lr)
	}
	return resp
}

func datePtr(t time.Time) *time.Time { return &t }
