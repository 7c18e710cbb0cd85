package middleware_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/clinicore/hr-management/internal/auth"
	"github.com/clinicore/hr-management/internal/authz"
	"github.com/clinicore/hr-management/internal/transport/middleware"
)

// membershipResolver reports assignment only for the project ids it knows.
type membershipResolver struct {
	projects map[string]bool
}

func (m *membershipResolver) IsAssigned(ctx context.Context, principal authz.Principal, azctx authz.Context) (bool, error) {
	return m.projects[azctx.ProjectID], nil
}

var _ = Describe("Permission guard", func() {
	var (
		router   *chi.Mux
		resolver *membershipResolver
	)

	employee := &authz.Principal{
		ID:           "e0000000-0000-0000-0000-000000000010",
		Role:         authz.RoleEmployee,
		UserType:     authz.UserTypeEmployee,
		DepartmentID: "d0000000-0000-0000-0000-000000000010",
		IsActive:     true,
	}
	client := &authz.Principal{
		ID:       "c0000000-0000-0000-0000-000000000011",
		Role:     authz.RoleClient,
		UserType: authz.UserTypeClient,
		IsActive: true,
	}

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	get := func(principal *authz.Principal, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req = req.WithContext(auth.ContextWithPrincipal(req.Context(), principal))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		resolver = &membershipResolver{projects: map[string]bool{"p1": true}}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		authorizer := authz.NewAuthorizer(resolver, logger)

		router = chi.NewRouter()
		router.With(middleware.RequireAnyPermission(authorizer, authz.ProjectsRead, authz.ProjectsReadAssigned)).
			Get("/projects", ok)
		router.With(middleware.RequireAnyPermission(authorizer, authz.ProjectsRead, authz.ProjectsReadAssigned)).
			Get("/projects/{id}", ok)
	})

	It("lets an employee list projects; the service scopes the results", func() {
		Expect(get(employee, "/projects").Code).To(Equal(http.StatusOK))
	})

	It("lets a client list projects", func() {
		Expect(get(client, "/projects").Code).To(Equal(http.StatusOK))
	})

	It("lets an employee read a project they are assigned to", func() {
		Expect(get(employee, "/projects/p1").Code).To(Equal(http.StatusOK))
	})

	It("denies an employee reading a project outside their assignments", func() {
		Expect(get(employee, "/projects/p2").Code).To(Equal(http.StatusForbidden))
	})

	It("rejects requests carrying no principal", func() {
		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})
})
