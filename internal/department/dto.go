package department

import "github.com/clinicore/hr-management/internal/core/validation"

type CreateDepartmentDTO struct {
	Code        string  `json:"code" validate:"required,uppercase,alphanum,min=2,max=8"`
	Name        string  `json:"name" validate:"required,max=150"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	ManagerID   *string `json:"manager_id" validate:"omitempty,uuid"`
}

func (d CreateDepartmentDTO) Validate() error {
	return validation.Struct(d)
}

// UpdateDepartmentDTO deliberately omits Code: the code prefixes employee
// numbers and is immutable once assigned.
type UpdateDepartmentDTO struct {
	Name        *string `json:"name" validate:"omitempty,max=150"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ManagerID   *string `json:"manager_id" validate:"omitempty,uuid"`
	IsActive    *bool   `json:"is_active"`
}

func (d UpdateDepartmentDTO) Validate() error {
	return validation.Struct(d)
}
