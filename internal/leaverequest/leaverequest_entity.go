package leaverequest

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// LeaveRequest is created once in PENDING and mutated exactly once, by a
// manager decision, into a terminal state. Rows are never deleted and never
// re-opened.
type LeaveRequest struct {
	ID          uuid.UUID
	EmployeeID  uuid.UUID
	LeaveTypeID uuid.UUID

	// Denormalized display names, populated by the list queries.
	EmployeeName  string
	LeaveTypeName string

	StartDate time.Time // date-only, inclusive
	EndDate   time.Time // date-only, inclusive
	TotalDays int
	Notes     string

	Status         string
	ManagerComment string

	CreatedOn  time.Time
	DecisionOn *time.Time
}
