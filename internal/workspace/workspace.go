package workspace

import (
	"encoding/json"
	"time"

	"github.com/clinicore/hr-management/internal/authz"
)

// Workspace is a project's collaboration room. Membership gates messaging.
type Workspace struct {
	ID          string          `json:"id" gorm:"column:id;primaryKey"`
	ProjectID   string          `json:"project_id" gorm:"column:project_id"`
	Name        string          `json:"name" gorm:"column:name"`
	Description string          `json:"description,omitempty" gorm:"column:description"`
	Settings    json.RawMessage `json:"settings,omitempty" gorm:"column:settings;type:jsonb"`
	IsActive    bool            `json:"is_active" gorm:"column:is_active"`
	CreatedAt   time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

// MemberRole is the member's standing inside a workspace, independent of
// their global role.
type MemberRole string

const (
	MemberRoleAdmin    MemberRole = "admin"
	MemberRoleMember   MemberRole = "member"
	MemberRoleObserver MemberRole = "observer"
)

func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleAdmin, MemberRoleMember, MemberRoleObserver:
		return true
	}
	return false
}

// Member ties an employee or client principal to a workspace.
type Member struct {
	ID          string         `json:"id" gorm:"column:id;primaryKey"`
	WorkspaceID string         `json:"workspace_id" gorm:"column:workspace_id"`
	UserID      string         `json:"user_id" gorm:"column:user_id"`
	UserType    authz.UserType `json:"user_type" gorm:"column:user_type"`
	Role        MemberRole     `json:"role" gorm:"column:role"`
	JoinedAt    time.Time      `json:"joined_at" gorm:"column:joined_at"`
}

func (Member) TableName() string {
	return "workspace_members"
}

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeFile  MessageType = "file"
	MessageTypeImage MessageType = "image"
	MessageTypeAudio MessageType = "audio"
	MessageTypeVideo MessageType = "video"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageTypeText, MessageTypeFile, MessageTypeImage, MessageTypeAudio, MessageTypeVideo:
		return true
	}
	return false
}

// Message is a workspace post. Deletion is soft so threads keep their shape;
// a deleted message keeps its row with IsDeleted set and content blanked.
type Message struct {
	ID          string          `json:"id" gorm:"column:id;primaryKey"`
	WorkspaceID string          `json:"workspace_id" gorm:"column:workspace_id"`
	SenderID    string          `json:"sender_id" gorm:"column:sender_id"`
	SenderType  authz.UserType  `json:"sender_type" gorm:"column:sender_type"`
	Content     string          `json:"content" gorm:"column:content"`
	MessageType MessageType     `json:"message_type" gorm:"column:message_type"`
	ThreadID    *string         `json:"thread_id,omitempty" gorm:"column:thread_id"`
	Attachments json.RawMessage `json:"attachments,omitempty" gorm:"column:attachments;type:jsonb"`
	IsEdited    bool            `json:"is_edited" gorm:"column:is_edited"`
	IsDeleted   bool            `json:"is_deleted" gorm:"column:is_deleted"`
	CreatedAt   time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (Message) TableName() string {
	return "workspace_messages"
}
