package position

import "time"

// Position is a job title within an optional department. IsManager marks
// positions whose holders appear in manager listings; IsMedical marks
// positions that require license tracking on the employee record.
type Position struct {
	ID           string    `json:"id" gorm:"column:id;primaryKey"`
	Code         string    `json:"code" gorm:"column:code"`
	Title        string    `json:"title" gorm:"column:title"`
	Description  string    `json:"description,omitempty" gorm:"column:description"`
	DepartmentID *string   `json:"department_id,omitempty" gorm:"column:department_id"`
	IsManager    bool      `json:"is_manager" gorm:"column:is_manager"`
	IsMedical    bool      `json:"is_medical" gorm:"column:is_medical"`
	IsActive     bool      `json:"is_active" gorm:"column:is_active"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Position) TableName() string {
	return "positions"
}
