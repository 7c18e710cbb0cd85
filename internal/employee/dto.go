package employee

import (
	"encoding/json"
	"time"

	internal "github.com/clinicore/hr-management/internal"
	"github.com/clinicore/hr-management/internal/core/validation"
)

// CreateEmployeeDTO carries the fields accepted at hire. Status and employee
// number are never client-supplied.
type CreateEmployeeDTO struct {
	Email                string          `json:"email" validate:"required,email"`
	Password             string          `json:"password" validate:"required,min=8"`
	FirstName            string          `json:"first_name" validate:"required,max=100"`
	LastName             string          `json:"last_name" validate:"required,max=100"`
	Phone                string          `json:"phone" validate:"omitempty,max=32"`
	DateOfBirth          *time.Time      `json:"date_of_birth"`
	Address              json.RawMessage `json:"address"`
	EmergencyContact     json.RawMessage `json:"emergency_contact"`
	DepartmentID         string          `json:"department_id" validate:"required,uuid"`
	PositionID           string          `json:"position_id" validate:"required,uuid"`
	ManagerID            *string         `json:"manager_id" validate:"omitempty,uuid"`
	Role                 string          `json:"role" validate:"required,oneof=super_admin admin dept_manager employee"`
	HireDate             *time.Time      `json:"hire_date" validate:"omitempty"`
	MedicalLicenseNumber string          `json:"medical_license_number" validate:"omitempty,max=64"`
	MedicalLicenseExpiry *time.Time      `json:"medical_license_expiry"`
}

func (d CreateEmployeeDTO) Validate() error {
	return validation.Struct(d)
}

// UpdateEmployeeDTO updates profile fields. Nil means "leave unchanged".
type UpdateEmployeeDTO struct {
	Email                *string         `json:"email" validate:"omitempty,email"`
	FirstName            *string         `json:"first_name" validate:"omitempty,max=100"`
	LastName             *string         `json:"last_name" validate:"omitempty,max=100"`
	Phone                *string         `json:"phone" validate:"omitempty,max=32"`
	DateOfBirth          *time.Time      `json:"date_of_birth"`
	Address              json.RawMessage `json:"address"`
	EmergencyContact     json.RawMessage `json:"emergency_contact"`
	DepartmentID         *string         `json:"department_id" validate:"omitempty,uuid"`
	PositionID           *string         `json:"position_id" validate:"omitempty,uuid"`
	ManagerID            *string         `json:"manager_id" validate:"omitempty,uuid"`
	Role                 *string         `json:"role" validate:"omitempty,oneof=super_admin admin dept_manager employee"`
	MedicalLicenseNumber *string         `json:"medical_license_number" validate:"omitempty,max=64"`
	MedicalLicenseExpiry *time.Time      `json:"medical_license_expiry"`
	IsActive             *bool           `json:"is_active"`
}

func (d UpdateEmployeeDTO) Validate() error {
	return validation.Struct(d)
}

// ChangeStatusDTO requests a lifecycle transition. TerminationDate is
// required when the target status is terminated and rejected otherwise.
type ChangeStatusDTO struct {
	Status          string     `json:"status" validate:"required,oneof=active on_leave suspended terminated retired"`
	TerminationDate *time.Time `json:"termination_date"`
}

func (d ChangeStatusDTO) Validate() error {
	if err := validation.Struct(d); err != nil {
		return err
	}
	if Status(d.Status) == StatusTerminated && d.TerminationDate == nil {
		return internal.NewValidationFieldError("termination_date",
			"termination_date is required when terminating", internal.ErrCodeValidationFailed)
	}
	if Status(d.Status) != StatusTerminated && d.TerminationDate != nil {
		return internal.NewValidationFieldError("termination_date",
			"termination_date is only valid when terminating", internal.ErrCodeValidationFailed)
	}
	return nil
}

// SearchParams filters and paginates employee listings.
type SearchParams struct {
	Query        string `json:"query"`
	DepartmentID string `json:"department_id"`
	PositionID   string `json:"position_id"`
	Status       string `json:"status"`
	Page         int    `json:"page"`
	PerPage      int    `json:"per_page"`
}

func (p *SearchParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 || p.PerPage > 100 {
		p.PerPage = 20
	}
}

// ListResult is a paginated page of employees.
type ListResult struct {
	Employees []Employee `json:"employees"`
	Total     int64      `json:"total"`
	Page      int        `json:"page"`
	PerPage   int        `json:"per_page"`
}
