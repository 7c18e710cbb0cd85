package department

import "time"

// Department groups employees and positions. Code is a short uppercase
// identifier that also prefixes employee numbers, so it never changes after
// employees exist under it.
type Department struct {
	ID          string    `json:"id" gorm:"column:id;primaryKey"`
	Code        string    `json:"code" gorm:"column:code"`
	Name        string    `json:"name" gorm:"column:name"`
	Description string    `json:"description,omitempty" gorm:"column:description"`
	ManagerID   *string   `json:"manager_id,omitempty" gorm:"column:manager_id"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Department) TableName() string {
	return "departments"
}

// WithCounts is the listing view: a department and how many active
// employees it holds.
type WithCounts struct {
	Department
	EmployeeCount int64 `json:"employee_count" gorm:"column:employee_count"`
}
