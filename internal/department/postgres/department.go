package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/clinicore/hr-management/internal/department"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, d *department.Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *Repository) GetByID(ctx context.Context, id string) (*department.Department, error) {
	var d department.Department
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) List(ctx context.Context) ([]department.WithCounts, error) {
	var departments []department.WithCounts
	err := r.db.WithContext(ctx).
		Table("departments").
		Select(`departments.*,
			COUNT(employees.id) FILTER (WHERE employees.status = 'active') AS employee_count`).
		Joins("LEFT JOIN employees ON employees.department_id = departments.id").
		Group("departments.id").
		Order("departments.code").
		Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *Repository) Update(ctx context.Context, d *department.Department) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&department.Department{}, "id = ?", id).Error
}

func (r *Repository) ReferenceCounts(ctx context.Context, id string) (int64, int64, error) {
	var employees, positions int64
	if err := r.db.WithContext(ctx).Table("employees").
		Where("department_id = ?", id).Count(&employees).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Table("positions").
		Where("department_id = ?", id).Count(&positions).Error; err != nil {
		return 0, 0, err
	}
	return employees, positions, nil
}
