package authz

import "strings"

// Scope narrows a permission to resources the principal owns or is
// assigned to.
const (
	ScopeOwn      = "own"
	ScopeAssigned = "assigned"
)

// Permission is one grantable capability: (resource, action, optional scope).
type Permission struct {
	Resource string
	Action   string
	Scope    string
}

// Name renders the canonical "resource:action[:scope]" form.
func (p Permission) Name() string {
	if p.Scope == "" {
		return p.Resource + ":" + p.Action
	}
	return p.Resource + ":" + p.Action + ":" + p.Scope
}

// ParsePermission parses "resource:action[:scope]".
func ParsePermission(name string) (Permission, bool) {
	parts := strings.Split(name, ":")
	switch len(parts) {
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Permission{}, false
		}
		return Permission{Resource: parts[0], Action: parts[1]}, true
	case 3:
		if parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return Permission{}, false
		}
		return Permission{Resource: parts[0], Action: parts[1], Scope: parts[2]}, true
	}
	return Permission{}, false
}

// Permission catalog.
var (
	UsersCreate    = Permission{Resource: "users", Action: "create"}
	UsersRead      = Permission{Resource: "users", Action: "read"}
	UsersUpdate    = Permission{Resource: "users", Action: "update"}
	UsersDelete    = Permission{Resource: "users", Action: "delete"}
	UsersReadOwn   = Permission{Resource: "users", Action: "read", Scope: ScopeOwn}
	UsersUpdateOwn = Permission{Resource: "users", Action: "update", Scope: ScopeOwn}

	DepartmentsCreate    = Permission{Resource: "departments", Action: "create"}
	DepartmentsRead      = Permission{Resource: "departments", Action: "read"}
	DepartmentsUpdate    = Permission{Resource: "departments", Action: "update"}
	DepartmentsDelete    = Permission{Resource: "departments", Action: "delete"}
	DepartmentsReadOwn   = Permission{Resource: "departments", Action: "read", Scope: ScopeOwn}
	DepartmentsUpdateOwn = Permission{Resource: "departments", Action: "update", Scope: ScopeOwn}

	ProjectsCreate         = Permission{Resource: "projects", Action: "create"}
	ProjectsRead           = Permission{Resource: "projects", Action: "read"}
	ProjectsUpdate         = Permission{Resource: "projects", Action: "update"}
	ProjectsDelete         = Permission{Resource: "projects", Action: "delete"}
	ProjectsReadAssigned   = Permission{Resource: "projects", Action: "read", Scope: ScopeAssigned}
	ProjectsUpdateAssigned = Permission{Resource: "projects", Action: "update", Scope: ScopeAssigned}

	WorkspacesCreate         = Permission{Resource: "workspaces", Action: "create"}
	WorkspacesRead           = Permission{Resource: "workspaces", Action: "read"}
	WorkspacesUpdate         = Permission{Resource: "workspaces", Action: "update"}
	WorkspacesDelete         = Permission{Resource: "workspaces", Action: "delete"}
	WorkspacesAccessAssigned = Permission{Resource: "workspaces", Action: "access", Scope: ScopeAssigned}

	MessagesSend      = Permission{Resource: "messages", Action: "send"}
	MessagesRead      = Permission{Resource: "messages", Action: "read"}
	MessagesUpdateOwn = Permission{Resource: "messages", Action: "update", Scope: ScopeOwn}
	MessagesDeleteOwn = Permission{Resource: "messages", Action: "delete", Scope: ScopeOwn}

	SystemConfigure = Permission{Resource: "system", Action: "configure"}
	RolesManage     = Permission{Resource: "roles", Action: "manage"}
	ReportsView     = Permission{Resource: "reports", Action: "view"}
)

// Catalog lists every known permission. super_admin is granted the whole
// catalog; /auth/me reports the caller's effective set.
func Catalog() []Permission {
	return []Permission{
		UsersCreate, UsersRead, UsersUpdate, UsersDelete, UsersReadOwn, UsersUpdateOwn,
		DepartmentsCreate, DepartmentsRead, DepartmentsUpdate, DepartmentsDelete,
		DepartmentsReadOwn, DepartmentsUpdateOwn,
		ProjectsCreate, ProjectsRead, ProjectsUpdate, ProjectsDelete,
		ProjectsReadAssigned, ProjectsUpdateAssigned,
		WorkspacesCreate, WorkspacesRead, WorkspacesUpdate, WorkspacesDelete,
		WorkspacesAccessAssigned,
		MessagesSend, MessagesRead, MessagesUpdateOwn, MessagesDeleteOwn,
		SystemConfigure, RolesManage, ReportsView,
	}
}
