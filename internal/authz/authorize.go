package authz

import (
	"context"
	"log/slog"
)

// Context carries the optional resource facts an authorization decision may
// compare against. Empty string means "not supplied".
type Context struct {
	TargetUserID string
	DepartmentID string
	ProjectID    string
	WorkspaceID  string
}

// AssignmentResolver answers whether a principal is assigned to the project
// or workspace named in the context. The lookup is a data-access
// collaborator; its result is treated as an opaque boolean input to the
// otherwise pure decision.
type AssignmentResolver interface {
	IsAssigned(ctx context.Context, principal Principal, azctx Context) (bool, error)
}

// Authorizer decides ALLOW or DENY for a principal, a requested permission
// and an optional resource context. It holds no mutable state and is safe
// to call from any number of concurrent request handlers.
type Authorizer struct {
	resolver AssignmentResolver
	logger   *slog.Logger
}

func NewAuthorizer(resolver AssignmentResolver, logger *slog.Logger) *Authorizer {
	return &Authorizer{
		resolver: resolver,
		logger:   logger,
	}
}

// Can applies the decision algorithm:
//
//  1. super_admin is always allowed.
//  2. the permission must be in the role's static set; a miss is DENY,
//     never an error.
//  3. "own" scope requires a target-identity match.
//  4. department-scoped "own" permissions additionally require an employee
//     principal attached to the target department.
//  5. "assigned" scope delegates to the AssignmentResolver when the context
//     names a project or workspace; collection routes carry no resource id
//     and pass, leaving the service to narrow the result set to the
//     caller's assignments.
func (a *Authorizer) Can(ctx context.Context, principal Principal, perm Permission, azctx Context) (bool, error) {
	if principal.Role == RoleSuperAdmin {
		return true, nil
	}

	if !roleHasPermission(principal.Role, perm) {
		return false, nil
	}

	switch perm.Scope {
	case ScopeOwn:
		if perm.Resource == "departments" {
			if principal.UserType != UserTypeEmployee || principal.DepartmentID == "" {
				return false, nil
			}
			return azctx.DepartmentID == principal.DepartmentID, nil
		}
		return azctx.TargetUserID != "" && azctx.TargetUserID == principal.ID, nil

	case ScopeAssigned:
		// No addressed resource means a collection listing; the service
		// filters those down to the caller's assignments.
		if azctx.ProjectID == "" && azctx.WorkspaceID == "" {
			return true, nil
		}
		if a.resolver == nil {
			return false, nil
		}
		assigned, err := a.resolver.IsAssigned(ctx, principal, azctx)
		if err != nil {
			a.logger.Error("assignment lookup failed",
				"principal_id", principal.ID,
				"permission", perm.Name(),
				"error", err)
			return false, err
		}
		return assigned, nil
	}

	return true, nil
}

// CanManageDepartment is a convenience predicate used by department update
// paths: admins manage any department, dept managers only their own.
func CanManageDepartment(principal Principal, departmentID string) bool {
	switch principal.Role {
	case RoleSuperAdmin, RoleAdmin:
		return true
	case RoleDeptManager:
		return principal.DepartmentID != "" && principal.DepartmentID == departmentID
	}
	return false
}

// CanAccessDepartment reports read access: admins everywhere, employees and
// managers only within their own department, clients never.
func CanAccessDepartment(principal Principal, departmentID string) bool {
	if principal.Role == RoleSuperAdmin || principal.Role == RoleAdmin {
		return true
	}
	if principal.UserType == UserTypeClient {
		return false
	}
	return principal.DepartmentID == departmentID
}
