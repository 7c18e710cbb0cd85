package department

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	internal "github.com/clinicore/hr-management/internal"
)

type Repository interface {
	Create(ctx context.Context, d *Department) error
	GetByID(ctx context.Context, id string) (*Department, error)
	List(ctx context.Context) ([]WithCounts, error)
	Update(ctx context.Context, d *Department) error
	Delete(ctx context.Context, id string) error
	ReferenceCounts(ctx context.Context, id string) (employees int64, positions int64, err error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, dto CreateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d := &Department{
		ID:          uuid.NewString(),
		Code:        dto.Code,
		Name:        dto.Name,
		Description: dto.Description,
		ManagerID:   dto.ManagerID,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, internal.TranslateDBError(err, "department")
	}

	s.logger.Info("department created", "department_id", d.ID, "code", d.Code)
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Department, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "department")
	}
	return d, nil
}

func (s *Service) List(ctx context.Context) ([]WithCounts, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.TranslateDBError(err, "department")
	}
	return departments, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateDepartmentDTO) (*Department, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "department")
	}

	if dto.Name != nil {
		d.Name = *dto.Name
	}
	if dto.Description != nil {
		d.Description = *dto.Description
	}
	if dto.ManagerID != nil {
		d.ManagerID = dto.ManagerID
	}
	if dto.IsActive != nil {
		d.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, internal.TranslateDBError(err, "department")
	}

	s.logger.Info("department updated", "department_id", d.ID)
	return d, nil
}

// Delete removes a department only when nothing references it. The check is
// advisory; the foreign keys still reject a racing reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return internal.TranslateDBError(err, "department")
	}

	employees, positions, err := s.repo.ReferenceCounts(ctx, id)
	if err != nil {
		return internal.TranslateDBError(err, "department")
	}
	if employees > 0 || positions > 0 {
		return internal.NewReferentialError(
			"department is still referenced by employees or positions",
			internal.ErrCodeReferenceMissing)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.TranslateDBError(err, "department")
	}

	s.logger.Info("department deleted", "department_id", id)
	return nil
}
