package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/clinicore/hr-management/internal/project"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *project.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repository) GetByID(ctx context.Context, id string) (*project.Project, error) {
	var p project.Project
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) List(ctx context.Context, filter project.ListFilter) ([]project.Project, error) {
	query := r.db.WithContext(ctx).Model(&project.Project{})

	switch {
	case filter.ClientID != "":
		query = query.Where("client_id = ?", filter.ClientID)
	case filter.DepartmentID != "" || filter.ManagerID != "":
		// Department members see departmental projects; managers also see
		// projects they run outside their department.
		query = query.Where("department_id = ? OR manager_id = ?",
			filter.DepartmentID, filter.ManagerID)
	}

	var projects []project.Project
	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *Repository) Update(ctx context.Context, p *project.Project) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&project.Project{}, "id = ?", id).Error
}
