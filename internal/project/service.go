package project

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	internal "github.com/clinicore/hr-management/internal"
	"github.com/clinicore/hr-management/internal/authz"
)

// ListFilter narrows a listing to what the caller may see. Zero value means
// unrestricted (admin view).
type ListFilter struct {
	DepartmentID string
	ManagerID    string
	ClientID     string
}

type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, filter ListFilter) ([]Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &Project{
		ID:           uuid.NewString(),
		Name:         dto.Name,
		Description:  dto.Description,
		ClientID:     dto.ClientID,
		DepartmentID: dto.DepartmentID,
		ManagerID:    dto.ManagerID,
		Status:       StatusDraft,
		StartDate:    dto.StartDate,
		EndDate:      dto.EndDate,
		Budget:       dto.Budget,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, internal.TranslateDBError(err, "project")
	}

	s.logger.Info("project created", "project_id", p.ID, "client_id", p.ClientID)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "project")
	}
	return p, nil
}

// List returns the projects visible to the caller. Admin roles see all,
// employees and managers see their department's or their managed projects,
// clients see their own engagements.
func (s *Service) List(ctx context.Context, principal *authz.Principal) ([]Project, error) {
	filter := filterFor(principal)

	projects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, internal.TranslateDBError(err, "project")
	}
	return projects, nil
}

func filterFor(principal *authz.Principal) ListFilter {
	if principal == nil {
		return ListFilter{}
	}

	switch principal.Role {
	case authz.RoleSuperAdmin, authz.RoleAdmin:
		return ListFilter{}
	case authz.RoleClient:
		return ListFilter{ClientID: principal.ID}
	default:
		return ListFilter{
			DepartmentID: principal.DepartmentID,
			ManagerID:    principal.ID,
		}
	}
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "project")
	}

	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Description != nil {
		p.Description = *dto.Description
	}
	if dto.ClientID != nil {
		p.ClientID = *dto.ClientID
	}
	if dto.DepartmentID != nil {
		p.DepartmentID = *dto.DepartmentID
	}
	if dto.ManagerID != nil {
		p.ManagerID = *dto.ManagerID
	}
	if dto.Status != nil {
		p.Status = ProjectStatus(*dto.Status)
	}
	if dto.StartDate != nil {
		p.StartDate = dto.StartDate
	}
	if dto.EndDate != nil {
		p.EndDate = dto.EndDate
	}
	if dto.Budget != nil {
		p.Budget = *dto.Budget
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, internal.TranslateDBError(err, "project")
	}

	s.logger.Info("project updated", "project_id", p.ID)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return internal.TranslateDBError(err, "project")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.TranslateDBError(err, "project")
	}

	s.logger.Info("project deleted", "project_id", id)
	return nil
}
