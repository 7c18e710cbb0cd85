package department_test

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	internal "github.com/clinicore/hr-management/internal"
	"github.com/clinicore/hr-management/internal/department"
)

type mockDepartmentRepo struct {
	byID          map[string]*department.Department
	createErr     error
	employeeCount int64
	positionCount int64
	deleted       []string
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{byID: make(map[string]*department.Department)}
}

func (m *mockDepartmentRepo) Create(ctx context.Context, d *department.Department) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[d.ID] = d
	return nil
}

func (m *mockDepartmentRepo) GetByID(ctx context.Context, id string) (*department.Department, error) {
	if d, ok := m.byID[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(ctx context.Context) ([]department.WithCounts, error) {
	var out []department.WithCounts
	for _, d := range m.byID {
		out = append(out, department.WithCounts{Department: *d, EmployeeCount: m.employeeCount})
	}
	return out, nil
}

func (m *mockDepartmentRepo) Update(ctx context.Context, d *department.Department) error {
	m.byID[d.ID] = d
	return nil
}

func (m *mockDepartmentRepo) Delete(ctx context.Context, id string) error {
	delete(m.byID, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockDepartmentRepo) ReferenceCounts(ctx context.Context, id string) (int64, int64, error) {
	return m.employeeCount, m.positionCount, nil
}

var _ = Describe("Department Service", func() {
	var (
		repo *mockDepartmentRepo
		svc  *department.Service
		ctx  context.Context
	)

	BeforeEach(func() {
		repo = newMockDepartmentRepo()
		svc = department.NewService(repo, slog.Default())
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("creates an active department", func() {
			d, err := svc.Create(ctx, department.CreateDepartmentDTO{Code: "CARD", Name: "Cardiology"})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.IsActive).To(BeTrue())
			Expect(d.Code).To(Equal("CARD"))
		})

		It("rejects a lowercase code", func() {
			_, err := svc.Create(ctx, department.CreateDepartmentDTO{Code: "card", Name: "Cardiology"})
			Expect(err).To(HaveOccurred())
		})

		It("translates a duplicate code into a conflict", func() {
			repo.createErr = &pgconn.PgError{Code: "23505", ConstraintName: "departments_code_key"}

			_, err := svc.Create(ctx, department.CreateDepartmentDTO{Code: "CARD", Name: "Cardiology"})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})
	})

	Describe("Delete", func() {
		var deptID string

		BeforeEach(func() {
			d, err := svc.Create(ctx, department.CreateDepartmentDTO{Code: "CARD", Name: "Cardiology"})
			Expect(err).NotTo(HaveOccurred())
			deptID = d.ID
		})

		It("deletes an unreferenced department", func() {
			Expect(svc.Delete(ctx, deptID)).To(Succeed())
			Expect(repo.deleted).To(ContainElement(deptID))
		})

		It("refuses to delete while employees reference it", func() {
			repo.employeeCount = 3

			err := svc.Delete(ctx, deptID)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeReferential))
			Expect(repo.byID).To(HaveKey(deptID))
		})

		It("refuses to delete while positions reference it", func() {
			repo.positionCount = 1

			err := svc.Delete(ctx, deptID)
			Expect(err).To(HaveOccurred())
			Expect(repo.byID).To(HaveKey(deptID))
		})

		It("returns not found for a missing department", func() {
			err := svc.Delete(ctx, "missing")
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})
	})

	Describe("Update", func() {
		It("never touches the department code", func() {
			d, err := svc.Create(ctx, department.CreateDepartmentDTO{Code: "CARD", Name: "Cardiology"})
			Expect(err).NotTo(HaveOccurred())

			name := "Cardiology & Vascular"
			updated, err := svc.Update(ctx, d.ID, department.UpdateDepartmentDTO{Name: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal(name))
			Expect(updated.Code).To(Equal("CARD"))
		})
	})
})
