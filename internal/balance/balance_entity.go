package balance

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSeedDays adalah saldo awal per jenis cuti saat employee diprovisi.
const DefaultSeedDays = 20.0

// LeaveBalance is one logical row per (employee, leave type) pair.
// Balance is in days and must never go below zero; every deduction happens
// through a conditional decrement on this row, never in memory.
type LeaveBalance struct {
	ID            uuid.UUID
	EmployeeID    uuid.UUID
	LeaveTypeID   uuid.UUID
	LeaveTypeName string
	Balance       float64
	UpdatedAt     time.Time
}
