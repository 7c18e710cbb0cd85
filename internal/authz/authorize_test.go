package authz_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/clinicore/hr-management/internal/authz"
)

type stubResolver struct {
	assigned bool
	err      error
	calls    int
}

func (s *stubResolver) IsAssigned(ctx context.Context, principal authz.Principal, azctx authz.Context) (bool, error) {
	s.calls++
	return s.assigned, s.err
}

var _ = Describe("Authorizer", func() {
	var (
		authorizer *authz.Authorizer
		resolver   *stubResolver
		logger     *slog.Logger
	)

	superAdmin := authz.Principal{
		ID:       "e0000000-0000-0000-0000-000000000001",
		Role:     authz.RoleSuperAdmin,
		UserType: authz.UserTypeEmployee,
		IsActive: true,
	}
	deptManager := authz.Principal{
		ID:           "e0000000-0000-0000-0000-000000000002",
		Role:         authz.RoleDeptManager,
		UserType:     authz.UserTypeEmployee,
		DepartmentID: "d0000000-0000-0000-0000-00000000000a",
		IsActive:     true,
	}
	employee := authz.Principal{
		ID:           "e0000000-0000-0000-0000-000000000003",
		Role:         authz.RoleEmployee,
		UserType:     authz.UserTypeEmployee,
		DepartmentID: "d0000000-0000-0000-0000-00000000000a",
		IsActive:     true,
	}
	client := authz.Principal{
		ID:       "c0000000-0000-0000-0000-000000000004",
		Role:     authz.RoleClient,
		UserType: authz.UserTypeClient,
		IsActive: true,
	}

	BeforeEach(func() {
		resolver = &stubResolver{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		authorizer = authz.NewAuthorizer(resolver, logger)
	})

	Describe("super admin universality", func() {
		It("should allow every catalog permission regardless of context", func() {
			for _, perm := range authz.Catalog() {
				allowed, err := authorizer.Can(context.Background(), superAdmin, perm, authz.Context{})
				Expect(err).ToNot(HaveOccurred())
				Expect(allowed).To(BeTrue(), "expected ALLOW for %s", perm.Name())

				allowed, err = authorizer.Can(context.Background(), superAdmin, perm, authz.Context{
					TargetUserID: "someone-else",
					DepartmentID: "another-department",
				})
				Expect(err).ToNot(HaveOccurred())
				Expect(allowed).To(BeTrue(), "expected ALLOW for %s with mismatched context", perm.Name())
			}
		})

		It("should not consult the assignment resolver", func() {
			allowed, err := authorizer.Can(context.Background(), superAdmin, authz.ProjectsReadAssigned, authz.Context{ProjectID: "p1"})
			Expect(err).ToNot(HaveOccurred())
			Expect(allowed).To(BeTrue())
			Expect(resolver.calls).To(BeZero())
		})
	})

	Describe("own-scope enforcement", func() {
		It("should allow when the target is the principal itself", func() {
			allowed, err := authorizer.Can(context.Background(), employee, authz.UsersUpdateOwn, authz.Context{
				TargetUserID: employee.ID,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})

		It("should deny when the target is another user", func() {
			allowed, err := authorizer.Can(context.Background(), employee, authz.UsersUpdateOwn, authz.Context{
				TargetUserID: deptManager.ID,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})

		It("should deny when no target identity is supplied", func() {
			allowed, err := authorizer.Can(context.Background(), employee, authz.UsersUpdateOwn, authz.Context{})
			Expect(err).ToNot(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})
	})

	Describe("department-scope enforcement", func() {
		It("should allow a dept manager updating their own department", func() {
			allowed, err := authorizer.Can(context.Background(), deptManager, authz.DepartmentsUpdateOwn, authz.Context{
				DepartmentID: deptManager.DepartmentID,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})

		It("should deny a dept manager updating a different department", func() {
			allowed, err := authorizer.Can(context.Background(), deptManager, authz.DepartmentsUpdateOwn, authz.Context{
				DepartmentID: "d0000000-0000-0000-0000-00000000000b",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})

		It("should deny a principal without a department", func() {
			detached := deptManager
			detached.DepartmentID = ""
			allowed, err := authorizer.Can(context.Background(), detached, authz.DepartmentsUpdateOwn, authz.Context{
				DepartmentID: "d0000000-0000-0000-0000-00000000000a",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})
	})

	Describe("client isolation", func() {
		It("should deny clients every permission outside their set", func() {
			denied := []authz.Permission{
				authz.DepartmentsCreate,
				authz.DepartmentsRead,
				authz.DepartmentsReadOwn,
				authz.UsersCreate,
				authz.UsersRead,
				authz.ProjectsCreate,
				authz.WorkspacesCreate,
				authz.SystemConfigure,
				authz.RolesManage,
				authz.ReportsView,
			}
			for _, perm := range denied {
				allowed, err := authorizer.Can(context.Background(), client, perm, authz.Context{})
				Expect(err).ToNot(HaveOccurred())
				Expect(allowed).To(BeFalse(), "expected DENY for client on %s", perm.Name())
			}
		})

		It("should still allow clients their own-scoped reads", func() {
			allowed, err := authorizer.Can(context.Background(), client, authz.UsersReadOwn, authz.Context{
				TargetUserID: client.ID,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(allowed).To(BeTrue())
		})
	})

	Describe("assigned scope", func() {
		It("should delegate to the assignment resolver", func() {
			resolver.assigned = true
			allowed, err := authorizer.Can(context.Background(), employee, authz.ProjectsReadAssigned, authz.Context{
				ProjectID: "p0000000-0000-0000-0000-000000000001",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(allowed).To(BeTrue())
			Expect(resolver.calls).To(Equal(1))
		})

		It("should deny when the resolver says not assigned", func() {
			resolver.assigned = false
			allowed, err := authorizer.Can(context.Background(), employee, authz.ProjectsReadAssigned, authz.Context{
				ProjectID: "p0000000-0000-0000-0000-000000000001",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})

		It("should surface resolver failures as deny with error", func() {
			resolver.err = errors.New("connection refused")
			allowed, err := authorizer.Can(context.Background(), employee, authz.ProjectsReadAssigned, authz.Context{
				ProjectID: "p0000000-0000-0000-0000-000000000001",
			})
			Expect(err).To(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})

		It("should allow collection listings without consulting the resolver", func() {
			// List routes address no single project or workspace; the
			// service narrows the results to the caller's assignments.
			for _, principal := range []authz.Principal{employee, deptManager, client} {
				allowed, err := authorizer.Can(context.Background(), principal, authz.ProjectsReadAssigned, authz.Context{})
				Expect(err).ToNot(HaveOccurred())
				Expect(allowed).To(BeTrue(), "expected ALLOW for %s listing projects", principal.Role)

				allowed, err = authorizer.Can(context.Background(), principal, authz.WorkspacesAccessAssigned, authz.Context{})
				Expect(err).ToNot(HaveOccurred())
				Expect(allowed).To(BeTrue(), "expected ALLOW for %s listing workspaces", principal.Role)
			}
			Expect(resolver.calls).To(BeZero())
		})

		It("should never reach the resolver when the role lacks the permission", func() {
			allowed, err := authorizer.Can(context.Background(), client, authz.ProjectsUpdateAssigned, authz.Context{
				ProjectID: "p0000000-0000-0000-0000-000000000001",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(allowed).To(BeFalse())
			Expect(resolver.calls).To(BeZero())
		})
	})

	Describe("unknown permissions", func() {
		It("should deny without error", func() {
			allowed, err := authorizer.Can(context.Background(), employee, authz.Permission{
				Resource: "payroll",
				Action:   "export",
			}, authz.Context{})
			Expect(err).ToNot(HaveOccurred())
			Expect(allowed).To(BeFalse())
		})
	})

	Describe("idempotence", func() {
		It("should return the same decision for repeated identical calls", func() {
			azctx := authz.Context{TargetUserID: employee.ID}
			first, err := authorizer.Can(context.Background(), employee, authz.UsersReadOwn, azctx)
			Expect(err).ToNot(HaveOccurred())
			for i := 0; i < 10; i++ {
				again, err := authorizer.Can(context.Background(), employee, authz.UsersReadOwn, azctx)
				Expect(err).ToNot(HaveOccurred())
				Expect(again).To(Equal(first))
			}
		})
	})
})

var _ = Describe("ParsePermission", func() {
	It("should parse unscoped names", func() {
		perm, ok := authz.ParsePermission("departments:create")
		Expect(ok).To(BeTrue())
		Expect(perm).To(Equal(authz.DepartmentsCreate))
	})

	It("should parse scoped names", func() {
		perm, ok := authz.ParsePermission("messages:delete:own")
		Expect(ok).To(BeTrue())
		Expect(perm).To(Equal(authz.MessagesDeleteOwn))
	})

	It("should reject malformed names", func() {
		for _, name := range []string{"", "users", "users:", ":read", "a:b:c:d"} {
			_, ok := authz.ParsePermission(name)
			Expect(ok).To(BeFalse(), "expected parse failure for %q", name)
		}
	})
})

var _ = Describe("RolePermissions", func() {
	It("should grant super_admin a superset of every other role", func() {
		superSet := map[string]struct{}{}
		for _, p := range authz.RolePermissions(authz.RoleSuperAdmin) {
			superSet[p.Name()] = struct{}{}
		}
		for _, role := range []authz.Role{authz.RoleAdmin, authz.RoleDeptManager, authz.RoleEmployee, authz.RoleClient} {
			for _, p := range authz.RolePermissions(role) {
				Expect(superSet).To(HaveKey(p.Name()), "super_admin missing %s held by %s", p.Name(), role)
			}
		}
	})

	It("should return an empty set for unknown roles", func() {
		Expect(authz.RolePermissions(authz.Role("intern"))).To(BeEmpty())
	})
})
