package project

import (
	"time"

	"github.com/clinicore/hr-management/internal/core/validation"
)

type CreateProjectDTO struct {
	Name         string     `json:"name" validate:"required,max=200"`
	Description  string     `json:"description" validate:"omitempty,max=1000"`
	ClientID     string     `json:"client_id" validate:"required,uuid"`
	DepartmentID string     `json:"department_id" validate:"required,uuid"`
	ManagerID    string     `json:"manager_id" validate:"required,uuid"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Budget       float64    `json:"budget" validate:"omitempty,gte=0"`
}

func (d CreateProjectDTO) Validate() error {
	return validation.Struct(d)
}

type UpdateProjectDTO struct {
	Name         *string    `json:"name" validate:"omitempty,max=200"`
	Description  *string    `json:"description" validate:"omitempty,max=1000"`
	ClientID     *string    `json:"client_id" validate:"omitempty,uuid"`
	DepartmentID *string    `json:"department_id" validate:"omitempty,uuid"`
	ManagerID    *string    `json:"manager_id" validate:"omitempty,uuid"`
	Status       *string    `json:"status" validate:"omitempty,oneof=draft active on_hold completed cancelled"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Budget       *float64   `json:"budget" validate:"omitempty,gte=0"`
}

func (d UpdateProjectDTO) Validate() error {
	return validation.Struct(d)
}
