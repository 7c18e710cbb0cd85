package project

import "time"

// ProjectStatus is the delivery state of a project. Unlike the employee
// lifecycle these moves are unrestricted; the field is informational.
type ProjectStatus string

const (
	StatusDraft     ProjectStatus = "draft"
	StatusActive    ProjectStatus = "active"
	StatusOnHold    ProjectStatus = "on_hold"
	StatusCompleted ProjectStatus = "completed"
	StatusCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Project links a client engagement to the department and manager running it.
type Project struct {
	ID           string        `json:"id" gorm:"column:id;primaryKey"`
	Name         string        `json:"name" gorm:"column:name"`
	Description  string        `json:"description,omitempty" gorm:"column:description"`
	ClientID     string        `json:"client_id" gorm:"column:client_id"`
	DepartmentID string        `json:"department_id" gorm:"column:department_id"`
	ManagerID    string        `json:"manager_id" gorm:"column:manager_id"`
	Status       ProjectStatus `json:"status" gorm:"column:status"`
	StartDate    *time.Time    `json:"start_date,omitempty" gorm:"column:start_date"`
	EndDate      *time.Time    `json:"end_date,omitempty" gorm:"column:end_date"`
	Budget       float64       `json:"budget" gorm:"column:budget"`
	CreatedAt    time.Time     `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time     `json:"updated_at" gorm:"column:updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
