package events

import "time"

const (
	EmployeeRegisteredTopic     = "elms.employee.lifecycle.v1"
	EmployeeRegisteredEventType = "employee.registered"
)

type EmployeeRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	OccurredAt time.Time `json:"occurred_at"`
}
