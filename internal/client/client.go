package client

import "time"

// Client is a company account with an optional portal login. The contact
// email doubles as the portal identity, so it is unique across clients.
type Client struct {
	ID            string     `json:"id" gorm:"column:id;primaryKey"`
	CompanyName   string     `json:"company_name" gorm:"column:company_name"`
	ContactPerson string     `json:"contact_person,omitempty" gorm:"column:contact_person"`
	ContactEmail  string     `json:"contact_email" gorm:"column:contact_email"`
	ContactPhone  string     `json:"contact_phone,omitempty" gorm:"column:contact_phone"`
	Address       string     `json:"address,omitempty" gorm:"column:address"`
	PasswordHash  string     `json:"-" gorm:"column:password_hash"`
	IsActive      bool       `json:"is_active" gorm:"column:is_active"`
	LastLogin     *time.Time `json:"last_login,omitempty" gorm:"column:last_login"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// HasPortalAccess reports whether the client can log in.
func (c *Client) HasPortalAccess() bool {
	return c.PasswordHash != ""
}
