package workspace

import (
	"encoding/json"

	"github.com/clinicore/hr-management/internal/core/validation"
)

type CreateWorkspaceDTO struct {
	ProjectID   string          `json:"project_id" validate:"required,uuid"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"omitempty,max=1000"`
	Settings    json.RawMessage `json:"settings"`
}

func (d CreateWorkspaceDTO) Validate() error {
	return validation.Struct(d)
}

type UpdateWorkspaceDTO struct {
	Name        *string         `json:"name" validate:"omitempty,max=200"`
	Description *string         `json:"description" validate:"omitempty,max=1000"`
	Settings    json.RawMessage `json:"settings"`
	IsActive    *bool           `json:"is_active"`
}

func (d UpdateWorkspaceDTO) Validate() error {
	return validation.Struct(d)
}

type AddMemberDTO struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	UserType string `json:"user_type" validate:"required,oneof=employee client"`
	Role     string `json:"role" validate:"required,oneof=admin member observer"`
}

func (d AddMemberDTO) Validate() error {
	return validation.Struct(d)
}

type SendMessageDTO struct {
	Content     string          `json:"content" validate:"required,max=10000"`
	MessageType string          `json:"message_type" validate:"omitempty,oneof=text file image audio video"`
	ThreadID    *string         `json:"thread_id" validate:"omitempty,uuid"`
	Attachments json.RawMessage `json:"attachments"`
}

func (d SendMessageDTO) Validate() error {
	return validation.Struct(d)
}

type EditMessageDTO struct {
	Content string `json:"content" validate:"required,max=10000"`
}

func (d EditMessageDTO) Validate() error {
	return validation.Struct(d)
}

// MessagePage is a paginated slice of workspace messages, newest first.
type MessagePage struct {
	Messages []Message `json:"messages"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
}
