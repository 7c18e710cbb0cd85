package authz

// rolePermissions is the static role→permission table. It is built once at
// package init and read-only afterwards. super_admin holds the full catalog
// by construction; Can additionally short-circuits on the role so the table
// entry is informational only.
var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: Catalog(),

	RoleAdmin: {
		UsersCreate, UsersRead, UsersUpdate,
		DepartmentsCreate, DepartmentsRead, DepartmentsUpdate,
		ProjectsCreate, ProjectsRead, ProjectsUpdate,
		WorkspacesCreate, WorkspacesRead, WorkspacesUpdate,
		MessagesSend, MessagesRead,
		ReportsView,
	},

	RoleDeptManager: {
		UsersRead, UsersUpdateOwn,
		DepartmentsReadOwn, DepartmentsUpdateOwn,
		ProjectsReadAssigned, ProjectsUpdateAssigned,
		WorkspacesAccessAssigned,
		MessagesSend, MessagesRead,
		MessagesUpdateOwn, MessagesDeleteOwn,
	},

	RoleEmployee: {
		UsersReadOwn, UsersUpdateOwn,
		DepartmentsReadOwn,
		ProjectsReadAssigned,
		WorkspacesAccessAssigned,
		MessagesSend, MessagesRead,
		MessagesUpdateOwn, MessagesDeleteOwn,
	},

	RoleClient: {
		UsersReadOwn, UsersUpdateOwn,
		ProjectsReadAssigned,
		WorkspacesAccessAssigned,
		MessagesSend, MessagesRead,
		MessagesUpdateOwn, MessagesDeleteOwn,
	},
}

// roleIndex holds the same table keyed by permission name for O(1) lookups.
var roleIndex map[Role]map[string]struct{}

func init() {
	roleIndex = make(map[Role]map[string]struct{}, len(rolePermissions))
	for role, perms := range rolePermissions {
		set := make(map[string]struct{}, len(perms))
		for _, p := range perms {
			set[p.Name()] = struct{}{}
		}
		roleIndex[role] = set
	}
}

// RolePermissions returns a copy of the permission set granted to a role.
func RolePermissions(role Role) []Permission {
	perms := rolePermissions[role]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

func roleHasPermission(role Role, perm Permission) bool {
	set, ok := roleIndex[role]
	if !ok {
		return false
	}
	_, ok = set[perm.Name()]
	return ok
}
