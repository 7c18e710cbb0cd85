package project_test

import (
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/clinicore/hr-management/internal/authz"
	"github.com/clinicore/hr-management/internal/project"
)

type mockProjectRepo struct {
	byID       map[string]*project.Project
	lastFilter project.ListFilter
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{byID: make(map[string]*project.Project)}
}

func (m *mockProjectRepo) Create(ctx context.Context, p *project.Project) error {
	m.byID[p.ID] = p
	return nil
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id string) (*project.Project, error) {
	if p, ok := m.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) List(ctx context.Context, filter project.ListFilter) ([]project.Project, error) {
	m.lastFilter = filter
	return nil, nil
}

func (m *mockProjectRepo) Update(ctx context.Context, p *project.Project) error {
	m.byID[p.ID] = p
	return nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

var _ = Describe("Project Service", func() {
	var (
		repo *mockProjectRepo
		svc  *project.Service
		ctx  context.Context
	)

	BeforeEach(func() {
		repo = newMockProjectRepo()
		svc = project.NewService(repo, slog.Default())
		ctx = context.Background()
	})

	Describe("List scoping", func() {
		It("leaves admins unrestricted", func() {
			_, err := svc.List(ctx, &authz.Principal{ID: "a1", Role: authz.RoleAdmin, UserType: authz.UserTypeEmployee})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastFilter).To(Equal(project.ListFilter{}))
		})

		It("narrows clients to their own engagements", func() {
			_, err := svc.List(ctx, &authz.Principal{ID: "cli-1", Role: authz.RoleClient, UserType: authz.UserTypeClient})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastFilter.ClientID).To(Equal("cli-1"))
			Expect(repo.lastFilter.DepartmentID).To(BeEmpty())
		})

		It("narrows employees to their department or managed projects", func() {
			_, err := svc.List(ctx, &authz.Principal{
				ID: "emp-1", Role: authz.RoleEmployee, UserType: authz.UserTypeEmployee, DepartmentID: "dept-1",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastFilter.DepartmentID).To(Equal("dept-1"))
			Expect(repo.lastFilter.ManagerID).To(Equal("emp-1"))
		})
	})

	It("creates projects in draft", func() {
		p, err := svc.Create(ctx, project.CreateProjectDTO{
			Name:         "Clinic portal",
			ClientID:     "8d6a3b5e-0000-4000-8000-000000000010",
			DepartmentID: "8d6a3b5e-0000-4000-8000-000000000011",
			ManagerID:    "8d6a3b5e-0000-4000-8000-000000000012",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Status).To(Equal(project.StatusDraft))
	})
})
