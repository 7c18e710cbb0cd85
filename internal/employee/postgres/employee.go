package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	internal "github.com/clinicore/hr-management/internal"
	"github.com/clinicore/hr-management/internal/employee"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, e *employee.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *Repository) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	var e employee.Employee
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	var e employee.Employee
	if err := r.db.WithContext(ctx).First(&e, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repository) Search(ctx context.Context, params employee.SearchParams) ([]employee.Employee, int64, error) {
	query := r.db.WithContext(ctx).Model(&employee.Employee{})

	if params.Query != "" {
		like := "%" + params.Query + "%"
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ? OR employee_number ILIKE ?",
			like, like, like, like)
	}
	if params.DepartmentID != "" {
		query = query.Where("department_id = ?", params.DepartmentID)
	}
	if params.PositionID != "" {
		query = query.Where("position_id = ?", params.PositionID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []employee.Employee
	offset := (params.Page - 1) * params.PerPage
	err := query.
		Order("last_name, first_name").
		Limit(params.PerPage).
		Offset(offset).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *Repository) Update(ctx context.Context, e *employee.Employee) error {
	e.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(e).Error
}

// LastNumberForPrefix returns the lexicographically greatest employee number
// under the department-year prefix, or empty when none exists yet.
func (r *Repository) LastNumberForPrefix(ctx context.Context, prefix string) (string, error) {
	var number string
	err := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Select("employee_number").
		Where("employee_number LIKE ?", prefix+"%").
		Order("employee_number DESC").
		Limit(1).
		Scan(&number).Error
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return number, nil
}

// TransitionStatus writes the status and termination date together, guarded
// by the expected current status. Zero affected rows means the record moved
// underneath the caller.
func (r *Repository) TransitionStatus(ctx context.Context, id string, from, to employee.Status, terminationDate *time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&employee.Employee{}).
			Where("id = ? AND status = ?", id, from).
			Updates(map[string]interface{}{
				"status":           to,
				"termination_date": terminationDate,
				"updated_at":       time.Now(),
			})
		if res.Error != nil {
			return internal.TranslateDBError(res.Error, "employee")
		}
		if res.RowsAffected == 0 {
			return internal.NewConflictError(
				"employee status changed concurrently", internal.ErrCodeConcurrentUpdate)
		}
		return nil
	})
}

func (r *Repository) DepartmentCode(ctx context.Context, departmentID string) (string, error) {
	var code string
	err := r.db.WithContext(ctx).
		Table("departments").
		Select("code").
		Where("id = ?", departmentID).
		Row().Scan(&code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", gorm.ErrRecordNotFound
		}
		return "", err
	}
	return code, nil
}

// ListManagers returns active employees holding a manager-flagged position
// or a managing role.
func (r *Repository) ListManagers(ctx context.Context) ([]employee.Employee, error) {
	var managers []employee.Employee
	err := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Joins("LEFT JOIN positions ON positions.id = employees.position_id").
		Where("employees.is_active = ? AND employees.status = ?", true, employee.StatusActive).
		Where("positions.is_manager = ? OR employees.role IN ?", true, []string{"super_admin", "admin", "dept_manager"}).
		Order("employees.last_name, employees.first_name").
		Find(&managers).Error
	if err != nil {
		return nil, err
	}
	return managers, nil
}
