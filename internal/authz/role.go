package authz

// Role determines the static permission set a principal holds.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleAdmin       Role = "admin"
	RoleDeptManager Role = "dept_manager"
	RoleEmployee    Role = "employee"
	RoleClient      Role = "client"
)

// UserType is the principal kind: staff member or external client.
type UserType string

const (
	UserTypeEmployee UserType = "employee"
	UserTypeClient   UserType = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleDeptManager, RoleEmployee, RoleClient:
		return true
	}
	return false
}

func (t UserType) Valid() bool {
	return t == UserTypeEmployee || t == UserTypeClient
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Principal is the authenticated caller of an action. It is produced by the
// session collaborator and never mutated by authorization logic.
type Principal struct {
	ID           string
	Role         Role
	UserType     UserType
	DepartmentID string
	IsActive     bool
}
