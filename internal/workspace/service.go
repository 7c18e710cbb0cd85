package workspace

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	internal "github.com/clinicore/hr-management/internal"
	"github.com/clinicore/hr-management/internal/authz"
)

type Repository interface {
	Create(ctx context.Context, w *Workspace) error
	GetByID(ctx context.Context, id string) (*Workspace, error)
	ListByProject(ctx context.Context, projectID string) ([]Workspace, error)
	ListVisible(ctx context.Context, projectID string, principal authz.Principal) ([]Workspace, error)
	Update(ctx context.Context, w *Workspace) error

	AddMember(ctx context.Context, m *Member) error
	RemoveMember(ctx context.Context, workspaceID, userID string) error
	ListMembers(ctx context.Context, workspaceID string) ([]Member, error)
	IsMember(ctx context.Context, workspaceID, userID string) (bool, error)

	CreateMessage(ctx context.Context, m *Message) error
	GetMessage(ctx context.Context, id string) (*Message, error)
	ListMessages(ctx context.Context, workspaceID string, page, perPage int) ([]Message, int64, error)
	UpdateMessage(ctx context.Context, m *Message) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, dto CreateWorkspaceDTO, creator *authz.Principal) (*Workspace, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	w := &Workspace{
		ID:          uuid.NewString(),
		ProjectID:   dto.ProjectID,
		Name:        dto.Name,
		Description: dto.Description,
		Settings:    dto.Settings,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, w); err != nil {
		return nil, internal.TranslateDBError(err, "workspace")
	}

	// The creator joins as workspace admin so the room is never orphaned.
	if creator != nil {
		member := &Member{
			ID:          uuid.NewString(),
			WorkspaceID: w.ID,
			UserID:      creator.ID,
			UserType:    creator.UserType,
			Role:        MemberRoleAdmin,
			JoinedAt:    time.Now(),
		}
		if err := s.repo.AddMember(ctx, member); err != nil {
			s.logger.Warn("failed to add creator as workspace member",
				"workspace_id", w.ID, "user_id", creator.ID, "error", err)
		}
	}

	s.logger.Info("workspace created", "workspace_id", w.ID, "project_id", w.ProjectID)
	return w, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Workspace, error) {
	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "workspace")
	}
	return w, nil
}

// List returns the workspaces the caller may see: admins everything,
// everyone else only workspaces they belong to or whose project they are
// assigned to.
func (s *Service) List(ctx context.Context, projectID string, caller *authz.Principal) ([]Workspace, error) {
	if caller == nil {
		return nil, internal.ErrInsufficientPermissions
	}

	var (
		workspaces []Workspace
		err        error
	)
	if caller.Role == authz.RoleSuperAdmin || caller.Role == authz.RoleAdmin {
		workspaces, err = s.repo.ListByProject(ctx, projectID)
	} else {
		workspaces, err = s.repo.ListVisible(ctx, projectID, *caller)
	}
	if err != nil {
		return nil, internal.TranslateDBError(err, "workspace")
	}
	return workspaces, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateWorkspaceDTO) (*Workspace, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	w, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "workspace")
	}

	if dto.Name != nil {
		w.Name = *dto.Name
	}
	if dto.Description != nil {
		w.Description = *dto.Description
	}
	if dto.Settings != nil {
		w.Settings = dto.Settings
	}
	if dto.IsActive != nil {
		w.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, internal.TranslateDBError(err, "workspace")
	}

	return w, nil
}

func (s *Service) AddMember(ctx context.Context, workspaceID string, dto AddMemberDTO) (*Member, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, workspaceID); err != nil {
		return nil, internal.TranslateDBError(err, "workspace")
	}

	m := &Member{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		UserID:      dto.UserID,
		UserType:    authz.UserType(dto.UserType),
		Role:        MemberRole(dto.Role),
		JoinedAt:    time.Now(),
	}

	if err := s.repo.AddMember(ctx, m); err != nil {
		return nil, internal.TranslateDBError(err, "workspace member")
	}

	s.logger.Info("workspace member added",
		"workspace_id", workspaceID, "user_id", dto.UserID, "member_role", dto.Role)
	return m, nil
}

func (s *Service) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	if err := s.repo.RemoveMember(ctx, workspaceID, userID); err != nil {
		return internal.TranslateDBError(err, "workspace member")
	}
	s.logger.Info("workspace member removed", "workspace_id", workspaceID, "user_id", userID)
	return nil
}

func (s *Service) ListMembers(ctx context.Context, workspaceID string) ([]Member, error) {
	if _, err := s.repo.GetByID(ctx, workspaceID); err != nil {
		return nil, internal.TranslateDBError(err, "workspace")
	}

	members, err := s.repo.ListMembers(ctx, workspaceID)
	if err != nil {
		return nil, internal.TranslateDBError(err, "workspace member")
	}
	return members, nil
}

// SendMessage posts into a workspace. Senders must be members; global role
// does not bypass the membership gate for writing.
func (s *Service) SendMessage(ctx context.Context, workspaceID string, dto SendMessageDTO, sender *authz.Principal) (*Message, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, internal.ErrInsufficientPermissions
	}

	if _, err := s.repo.GetByID(ctx, workspaceID); err != nil {
		return nil, internal.TranslateDBError(err, "workspace")
	}

	isMember, err := s.repo.IsMember(ctx, workspaceID, sender.ID)
	if err != nil {
		return nil, internal.TranslateDBError(err, "workspace member")
	}
	if !isMember {
		return nil, internal.ErrInsufficientPermissions
	}

	messageType := MessageType(dto.MessageType)
	if dto.MessageType == "" {
		messageType = MessageTypeText
	}

	m := &Message{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		SenderID:    sender.ID,
		SenderType:  sender.UserType,
		Content:     dto.Content,
		MessageType: messageType,
		ThreadID:    dto.ThreadID,
		Attachments: dto.Attachments,
	}

	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, internal.TranslateDBError(err, "message")
	}

	return m, nil
}

// ListMessages requires membership, with an admin override for oversight.
func (s *Service) ListMessages(ctx context.Context, workspaceID string, page, perPage int, reader *authz.Principal) (*MessagePage, error) {
	if reader == nil {
		return nil, internal.ErrInsufficientPermissions
	}

	if _, err := s.repo.GetByID(ctx, workspaceID); err != nil {
		return nil, internal.TranslateDBError(err, "workspace")
	}

	if reader.Role != authz.RoleSuperAdmin && reader.Role != authz.RoleAdmin {
		isMember, err := s.repo.IsMember(ctx, workspaceID, reader.ID)
		if err != nil {
			return nil, internal.TranslateDBError(err, "workspace member")
		}
		if !isMember {
			return nil, internal.ErrInsufficientPermissions
		}
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}

	messages, total, err := s.repo.ListMessages(ctx, workspaceID, page, perPage)
	if err != nil {
		return nil, internal.TranslateDBError(err, "message")
	}

	return &MessagePage{Messages: messages, Total: total, Page: page, PerPage: perPage}, nil
}

// EditMessage changes a message's content. Only the author may edit.
func (s *Service) EditMessage(ctx context.Context, messageID string, dto EditMessageDTO, editor *authz.Principal) (*Message, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if editor == nil {
		return nil, internal.ErrInsufficientPermissions
	}

	m, err := s.repo.GetMessage(ctx, messageID)
	if err != nil {
		return nil, internal.TranslateDBError(err, "message")
	}
	if m.IsDeleted {
		return nil, internal.NewNotFoundError("message not found", internal.ErrCodeMessageNotFound)
	}
	if m.SenderID != editor.ID {
		return nil, internal.ErrInsufficientPermissions
	}

	m.Content = dto.Content
	m.IsEdited = true

	if err := s.repo.UpdateMessage(ctx, m); err != nil {
		return nil, internal.TranslateDBError(err, "message")
	}

	return m, nil
}

// DeleteMessage soft-deletes. Only the author may delete; the row survives
// with blanked content so threads stay intact.
func (s *Service) DeleteMessage(ctx context.Context, messageID string, caller *authz.Principal) error {
	if caller == nil {
		return internal.ErrInsufficientPermissions
	}

	m, err := s.repo.GetMessage(ctx, messageID)
	if err != nil {
		return internal.TranslateDBError(err, "message")
	}
	if m.IsDeleted {
		return internal.NewNotFoundError("message not found", internal.ErrCodeMessageNotFound)
	}
	if m.SenderID != caller.ID {
		return internal.ErrInsufficientPermissions
	}

	m.Content = ""
	m.Attachments = nil
	m.IsDeleted = true

	if err := s.repo.UpdateMessage(ctx, m); err != nil {
		return internal.TranslateDBError(err, "message")
	}

	s.logger.Info("message deleted", "message_id", messageID, "workspace_id", m.WorkspaceID)
	return nil
}
