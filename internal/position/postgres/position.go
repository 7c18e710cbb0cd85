package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/clinicore/hr-management/internal/position"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *position.Position) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repository) GetByID(ctx context.Context, id string) (*position.Position, error) {
	var p position.Position
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) List(ctx context.Context, departmentID string) ([]position.Position, error) {
	query := r.db.WithContext(ctx).Model(&position.Position{})
	if departmentID != "" {
		query = query.Where("department_id = ?", departmentID)
	}

	var positions []position.Position
	if err := query.Order("code").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *Repository) Update(ctx context.Context, p *position.Position) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&position.Position{}, "id = ?", id).Error
}

func (r *Repository) EmployeeCount(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("employees").
		Where("position_id = ?", id).Count(&count).Error
	return count, err
}
