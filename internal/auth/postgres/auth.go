package postgres

import (
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/clinicore/hr-management/internal/auth"
	"github.com/clinicore/hr-management/internal/authz"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindEmployeeAccount(email string) (*auth.Account, error) {
	var (
		account      auth.Account
		role         string
		departmentID sql.NullString
		passwordHash sql.NullString
	)
	query := `SELECT id, email, password_hash, role, department_id, is_active
	          FROM employees WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&account.ID, &account.Email, &passwordHash, &role, &departmentID, &account.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	account.PasswordHash = passwordHash.String
	account.Role = authz.Role(role)
	account.UserType = authz.UserTypeEmployee
	account.DepartmentID = departmentID.String
	return &account, nil
}

func (r *Repository) FindClientAccount(email string) (*auth.Account, error) {
	var (
		account      auth.Account
		passwordHash sql.NullString
	)
	query := `SELECT id, contact_email, password_hash, is_active
	          FROM clients WHERE contact_email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&account.ID, &account.Email, &passwordHash, &account.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	account.PasswordHash = passwordHash.String
	account.Role = authz.RoleClient
	account.UserType = authz.UserTypeClient
	return &account, nil
}

func (r *Repository) GetPrincipal(userID string, userType authz.UserType) (*authz.Principal, error) {
	switch userType {
	case authz.UserTypeEmployee:
		var (
			role         string
			departmentID sql.NullString
			isActive     bool
		)
		query := `SELECT role, department_id, is_active FROM employees WHERE id = ?`
		row := r.db.Raw(query, userID).Row()
		if err := row.Scan(&role, &departmentID, &isActive); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		return &authz.Principal{
			ID:           userID,
			Role:         authz.Role(role),
			UserType:     authz.UserTypeEmployee,
			DepartmentID: departmentID.String,
			IsActive:     isActive,
		}, nil

	case authz.UserTypeClient:
		var isActive bool
		query := `SELECT is_active FROM clients WHERE id = ?`
		row := r.db.Raw(query, userID).Row()
		if err := row.Scan(&isActive); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		return &authz.Principal{
			ID:       userID,
			Role:     authz.RoleClient,
			UserType: authz.UserTypeClient,
			IsActive: isActive,
		}, nil
	}

	return nil, auth.ErrInvalidToken
}

func (r *Repository) TouchLastLogin(userID string, userType authz.UserType) error {
	table := "employees"
	if userType == authz.UserTypeClient {
		table = "clients"
	}
	return r.db.Table(table).Where("id = ?", userID).Update("last_login", time.Now()).Error
}
