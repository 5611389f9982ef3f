package events

import "time"

const (
	LeaveLifecycleTopic = "elms.leave.lifecycle.v1"

	LeaveAppliedEventType  = "leave.applied"
	LeaveApprovedEventType = "leave.approved"
	LeaveRejectedEventType = "leave.rejected"
)

type LeaveAppliedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id"`
	EmployeeID  string    `json:"employee_id"`
	LeaveTypeID string    `json:"leave_type_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	TotalDays   int       `json:"total_days"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type LeaveDecidedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id"`
	EmployeeID     string    `json:"employee_id"`
	LeaveTypeID    string    `json:"leave_type_id"`
	Status         string    `json:"status"`
	TotalDays      int       `json:"total_days"`
	ManagerComment string    `json:"manager_comment,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
