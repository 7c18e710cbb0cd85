package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/clinicore/hr-management/internal/authz"
	"github.com/clinicore/hr-management/internal/workspace"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, w *workspace.Workspace) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *Repository) GetByID(ctx context.Context, id string) (*workspace.Workspace, error) {
	var w workspace.Workspace
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repository) ListByProject(ctx context.Context, projectID string) ([]workspace.Workspace, error) {
	query := r.db.WithContext(ctx).Model(&workspace.Workspace{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}

	var workspaces []workspace.Workspace
	if err := query.Order("created_at DESC").Find(&workspaces).Error; err != nil {
		return nil, err
	}
	return workspaces, nil
}

// ListVisible narrows the listing to workspaces the principal belongs to or
// whose project it is assigned to, mirroring the assigned-scope rules in
// IsAssigned.
func (r *Repository) ListVisible(ctx context.Context, projectID string, principal authz.Principal) ([]workspace.Workspace, error) {
	query := r.db.WithContext(ctx).Model(&workspace.Workspace{}).
		Joins("JOIN projects ON projects.id = workspaces.project_id")
	if projectID != "" {
		query = query.Where("workspaces.project_id = ?", projectID)
	}

	membership := "workspaces.id IN (SELECT workspace_id FROM workspace_members WHERE user_id = ?)"
	if principal.UserType == authz.UserTypeClient {
		query = query.Where(membership+" OR projects.client_id = ?", principal.ID, principal.ID)
	} else {
		query = query.Where(membership+" OR projects.manager_id = ? OR projects.department_id = ?",
			principal.ID, principal.ID, principal.DepartmentID)
	}

	var workspaces []workspace.Workspace
	if err := query.Order("workspaces.created_at DESC").Find(&workspaces).Error; err != nil {
		return nil, err
	}
	return workspaces, nil
}

func (r *Repository) Update(ctx context.Context, w *workspace.Workspace) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *Repository) AddMember(ctx context.Context, m *workspace.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *Repository) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	res := r.db.WithContext(ctx).
		Delete(&workspace.Member{}, "workspace_id = ? AND user_id = ?", workspaceID, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) ListMembers(ctx context.Context, workspaceID string) ([]workspace.Member, error) {
	var members []workspace.Member
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("joined_at").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *Repository) IsMember(ctx context.Context, workspaceID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&workspace.Member{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CreateMessage(ctx context.Context, m *workspace.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *Repository) GetMessage(ctx context.Context, id string) (*workspace.Message, error) {
	var m workspace.Message
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) ListMessages(ctx context.Context, workspaceID string, page, perPage int) ([]workspace.Message, int64, error) {
	query := r.db.WithContext(ctx).Model(&workspace.Message{}).
		Where("workspace_id = ?", workspaceID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []workspace.Message
	err := query.
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (r *Repository) UpdateMessage(ctx context.Context, m *workspace.Message) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// IsAssigned implements the assigned-scope check for the authorizer. A
// principal is assigned when it belongs to the workspace, or when the
// addressed project is run by its department, managed by it, or owned by it
// as the client.
func (r *Repository) IsAssigned(ctx context.Context, principal authz.Principal, azctx authz.Context) (bool, error) {
	if azctx.WorkspaceID != "" {
		isMember, err := r.IsMember(ctx, azctx.WorkspaceID, principal.ID)
		if err != nil {
			return false, err
		}
		if isMember {
			return true, nil
		}

		// Fall through to the workspace's project relations.
		var projectID string
		err = r.db.WithContext(ctx).
			Model(&workspace.Workspace{}).
			Select("project_id").
			Where("id = ?", azctx.WorkspaceID).
			Row().Scan(&projectID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return false, nil
			}
			return false, err
		}
		return r.isAssignedToProject(ctx, principal, projectID)
	}

	if azctx.ProjectID != "" {
		return r.isAssignedToProject(ctx, principal, azctx.ProjectID)
	}

	return false, nil
}

func (r *Repository) isAssignedToProject(ctx context.Context, principal authz.Principal, projectID string) (bool, error) {
	var (
		clientID     string
		departmentID string
		managerID    string
	)
	err := r.db.WithContext(ctx).
		Table("projects").
		Select("client_id, department_id, manager_id").
		Where("id = ?", projectID).
		Row().Scan(&clientID, &departmentID, &managerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	if principal.UserType == authz.UserTypeClient {
		return clientID == principal.ID, nil
	}
	if managerID == principal.ID {
		return true, nil
	}
	return principal.DepartmentID != "" && departmentID == principal.DepartmentID, nil
}
