package client

import "github.com/clinicore/hr-management/internal/core/validation"

type CreateClientDTO struct {
	CompanyName   string `json:"company_name" validate:"required,max=200"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=150"`
	ContactEmail  string `json:"contact_email" validate:"required,email"`
	ContactPhone  string `json:"contact_phone" validate:"omitempty,max=32"`
	Address       string `json:"address" validate:"omitempty,max=500"`
	// Password is optional; without it the client has no portal login.
	Password string `json:"password" validate:"omitempty,min=8"`
}

func (d CreateClientDTO) Validate() error {
	return validation.Struct(d)
}

type UpdateClientDTO struct {
	CompanyName   *string `json:"company_name" validate:"omitempty,max=200"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=150"`
	ContactEmail  *string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone  *string `json:"contact_phone" validate:"omitempty,max=32"`
	Address       *string `json:"address" validate:"omitempty,max=500"`
	Password      *string `json:"password" validate:"omitempty,min=8"`
	IsActive      *bool   `json:"is_active"`
}

func (d UpdateClientDTO) Validate() error {
	return validation.Struct(d)
}
