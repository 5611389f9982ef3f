package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleAdmin    = "ADMIN"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"uniqueIndex:uq_employee_email;not null"`
	FullName  string    `gorm:"not null"`
	Password  string    `gorm:"not null"` // bcrypt hash
	Roles     []string  `gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PrimaryRole dipakai untuk klaim JWT dan tampilan; enforcement route
// tetap lewat middleware.RoleMiddleware.
func (e *Employee) PrimaryRole() string {
	if len(e.Roles) == 0 {
		return RoleEmployee
	}
	return e.Roles[0]
}

func (e *Employee) HasRole(role string) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}
