package employee

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	internal "github.com/clinicore/hr-management/internal"
	"github.com/clinicore/hr-management/internal/authz"
)

// Status is the lifecycle state of an employee record.
type Status string

const (
	StatusActive     Status = "active"
	StatusOnLeave    Status = "on_leave"
	StatusSuspended  Status = "suspended"
	StatusTerminated Status = "terminated"
	StatusRetired    Status = "retired"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusOnLeave, StatusSuspended, StatusTerminated, StatusRetired:
		return true
	}
	return false
}

// Terminal states admit no further transitions.
func (s Status) Terminal() bool {
	return s == StatusTerminated || s == StatusRetired
}

// allowedTransitions is the full lifecycle table. Leave and suspension are
// reversible; termination and retirement are not.
var allowedTransitions = map[Status][]Status{
	StatusActive:    {StatusOnLeave, StatusSuspended, StatusTerminated, StatusRetired},
	StatusOnLeave:   {StatusActive, StatusTerminated},
	StatusSuspended: {StatusActive, StatusTerminated},
}

// CanTransition reports whether the lifecycle table permits from -> to.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a typed rejection for transitions outside the
// lifecycle table. The caller's record must remain unchanged on rejection.
func ValidateTransition(from, to Status) *internal.AppError {
	if !to.Valid() {
		return internal.NewValidationFieldError("status", fmt.Sprintf("unknown status %q", to), internal.ErrCodeValidationFailed)
	}
	if from == to {
		return internal.NewTransitionError(fmt.Sprintf("employee is already %s", from))
	}
	if from.Terminal() {
		return internal.NewTransitionError(fmt.Sprintf("%s is a terminal status", from))
	}
	if !CanTransition(from, to) {
		return internal.NewTransitionError(fmt.Sprintf("cannot transition from %s to %s", from, to))
	}
	return nil
}

const (
	numberSequenceDigits = 4
	numberSequenceMax    = 9999
)

// ErrNumberSequenceExhausted is returned when a department-year runs past
// the 4-digit sequence space.
var ErrNumberSequenceExhausted = internal.NewConflictError(
	"employee number sequence exhausted for department and year",
	internal.ErrCodeSequenceExhausted,
)

// NumberPrefix forms the department-year prefix of an employee number,
// e.g. ("CARD", 2024) -> "CARD2024".
func NumberPrefix(departmentCode string, year int) string {
	return fmt.Sprintf("%s%d", strings.ToUpper(departmentCode), year)
}

// NextNumber derives the next employee number from the greatest existing
// number under the prefix. lastNumber is empty when the department-year has
// no employees yet. The result is unique only once the store's uniqueness
// constraint accepts it; callers retry on conflict.
func NextNumber(departmentCode string, year int, lastNumber string) (string, error) {
	prefix := NumberPrefix(departmentCode, year)

	seq := 0
	if lastNumber != "" {
		tail := strings.TrimPrefix(lastNumber, prefix)
		if tail == lastNumber || len(tail) != numberSequenceDigits {
			return "", internal.NewInternalError(
				fmt.Sprintf("malformed employee number %q for prefix %s", lastNumber, prefix), nil)
		}
		parsed, err := strconv.Atoi(tail)
		if err != nil {
			return "", internal.NewInternalError(
				fmt.Sprintf("malformed employee number %q for prefix %s", lastNumber, prefix), nil)
		}
		seq = parsed
	}

	if seq >= numberSequenceMax {
		return "", ErrNumberSequenceExhausted
	}

	return fmt.Sprintf("%s%0*d", prefix, numberSequenceDigits, seq+1), nil
}

// Employee is the persisted employee record. EmployeeNumber is assigned at
// hire and never changes; Status moves only along the lifecycle table.
type Employee struct {
	ID                   string          `json:"id" gorm:"column:id;primaryKey"`
	EmployeeNumber       string          `json:"employee_number" gorm:"column:employee_number"`
	Email                string          `json:"email" gorm:"column:email"`
	PasswordHash         string          `json:"-" gorm:"column:password_hash"`
	FirstName            string          `json:"first_name" gorm:"column:first_name"`
	LastName             string          `json:"last_name" gorm:"column:last_name"`
	Phone                string          `json:"phone,omitempty" gorm:"column:phone"`
	DateOfBirth          *time.Time      `json:"date_of_birth,omitempty" gorm:"column:date_of_birth"`
	Address              json.RawMessage `json:"address,omitempty" gorm:"column:address;type:jsonb"`
	EmergencyContact     json.RawMessage `json:"emergency_contact,omitempty" gorm:"column:emergency_contact;type:jsonb"`
	DepartmentID         string          `json:"department_id" gorm:"column:department_id"`
	PositionID           string          `json:"position_id" gorm:"column:position_id"`
	ManagerID            *string         `json:"manager_id,omitempty" gorm:"column:manager_id"`
	Role                 authz.Role      `json:"role" gorm:"column:role"`
	Status               Status          `json:"status" gorm:"column:status"`
	HireDate             time.Time       `json:"hire_date" gorm:"column:hire_date"`
	TerminationDate      *time.Time      `json:"termination_date,omitempty" gorm:"column:termination_date"`
	MedicalLicenseNumber string          `json:"medical_license_number,omitempty" gorm:"column:medical_license_number"`
	MedicalLicenseExpiry *time.Time      `json:"medical_license_expiry,omitempty" gorm:"column:medical_license_expiry"`
	IsActive             bool            `json:"is_active" gorm:"column:is_active"`
	LastLogin            *time.Time      `json:"last_login,omitempty" gorm:"column:last_login"`
	CreatedBy            *string         `json:"created_by,omitempty" gorm:"column:created_by"`
	UpdatedBy            *string         `json:"updated_by,omitempty" gorm:"column:updated_by"`
	CreatedAt            time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt            time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
