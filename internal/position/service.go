package position

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	internal "github.com/clinicore/hr-management/internal"
)

type Repository interface {
	Create(ctx context.Context, p *Position) error
	GetByID(ctx context.Context, id string) (*Position, error)
	List(ctx context.Context, departmentID string) ([]Position, error)
	Update(ctx context.Context, p *Position) error
	Delete(ctx context.Context, id string) error
	EmployeeCount(ctx context.Context, id string) (int64, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, dto CreatePositionDTO) (*Position, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &Position{
		ID:           uuid.NewString(),
		Code:         dto.Code,
		Title:        dto.Title,
		Description:  dto.Description,
		DepartmentID: dto.DepartmentID,
		IsManager:    dto.IsManager,
		IsMedical:    dto.IsMedical,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, internal.TranslateDBError(err, "position")
	}

	s.logger.Info("position created", "position_id", p.ID, "code", p.Code)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Position, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "position")
	}
	return p, nil
}

// List returns positions, optionally narrowed to one department.
func (s *Service) List(ctx context.Context, departmentID string) ([]Position, error) {
	positions, err := s.repo.List(ctx, departmentID)
	if err != nil {
		return nil, internal.TranslateDBError(err, "position")
	}
	return positions, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdatePositionDTO) (*Position, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "position")
	}

	if dto.Title != nil {
		p.Title = *dto.Title
	}
	if dto.Description != nil {
		p.Description = *dto.Description
	}
	if dto.DepartmentID != nil {
		p.DepartmentID = dto.DepartmentID
	}
	if dto.IsManager != nil {
		p.IsManager = *dto.IsManager
	}
	if dto.IsMedical != nil {
		p.IsMedical = *dto.IsMedical
	}
	if dto.IsActive != nil {
		p.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, internal.TranslateDBError(err, "position")
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return internal.TranslateDBError(err, "position")
	}

	count, err := s.repo.EmployeeCount(ctx, id)
	if err != nil {
		return internal.TranslateDBError(err, "position")
	}
	if count > 0 {
		return internal.NewReferentialError(
			"position is still referenced by employees", internal.ErrCodeReferenceMissing)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.TranslateDBError(err, "position")
	}

	s.logger.Info("position deleted", "position_id", id)
	return nil
}
