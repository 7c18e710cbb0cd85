package position

import "github.com/clinicore/hr-management/internal/core/validation"

type CreatePositionDTO struct {
	Code         string  `json:"code" validate:"required,uppercase,alphanum,min=2,max=12"`
	Title        string  `json:"title" validate:"required,max=150"`
	Description  string  `json:"description" validate:"omitempty,max=500"`
	DepartmentID *string `json:"department_id" validate:"omitempty,uuid"`
	IsManager    bool    `json:"is_manager"`
	IsMedical    bool    `json:"is_medical"`
}

func (d CreatePositionDTO) Validate() error {
	return validation.Struct(d)
}

type UpdatePositionDTO struct {
	Title        *string `json:"title" validate:"omitempty,max=150"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	DepartmentID *string `json:"department_id" validate:"omitempty,uuid"`
	IsManager    *bool   `json:"is_manager"`
	IsMedical    *bool   `json:"is_medical"`
	IsActive     *bool   `json:"is_active"`
}

func (d UpdatePositionDTO) Validate() error {
	return validation.Struct(d)
}
