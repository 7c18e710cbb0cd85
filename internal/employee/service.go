package employee

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/clinicore/hr-management/internal"
	"github.com/clinicore/hr-management/internal/authz"
)

// Repository is the persistence contract for employees. TransitionStatus
// must perform the status write and the termination-date write in one
// transaction, guarded by the expected current status.
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	Search(ctx context.Context, params SearchParams) ([]Employee, int64, error)
	Update(ctx context.Context, e *Employee) error
	LastNumberForPrefix(ctx context.Context, prefix string) (string, error)
	TransitionStatus(ctx context.Context, id string, from, to Status, terminationDate *time.Time) error
	DepartmentCode(ctx context.Context, departmentID string) (string, error)
	ListManagers(ctx context.Context) ([]Employee, error)
}

// numberAllocationAttempts bounds the retry loop around the employee-number
// unique constraint. Two concurrent hires in the same department-year can
// both compute the same candidate; the loser re-reads and retries.
const numberAllocationAttempts = 3

type Service struct {
	repo       Repository
	logger     *slog.Logger
	bcryptCost int
	now        func() time.Time
}

func NewService(repo Repository, logger *slog.Logger, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		logger:     logger,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// Create hires a new employee: validates input, allocates the employee
// number, and persists the record with status active.
func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO, createdBy string) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	// Advisory pre-check; the unique constraint still owns correctness.
	if existing, err := s.repo.GetByEmail(ctx, dto.Email); err == nil && existing != nil {
		return nil, internal.NewConflictError("employee already exists", internal.ErrCodeAlreadyExists)
	}

	deptCode, err := s.repo.DepartmentCode(ctx, dto.DepartmentID)
	if err != nil {
		return nil, internal.TranslateDBError(err, "department")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	hireDate := s.now()
	if dto.HireDate != nil {
		hireDate = *dto.HireDate
	}

	e := &Employee{
		ID:                   uuid.NewString(),
		Email:                dto.Email,
		PasswordHash:         string(hash),
		FirstName:            dto.FirstName,
		LastName:             dto.LastName,
		Phone:                dto.Phone,
		DateOfBirth:          dto.DateOfBirth,
		Address:              dto.Address,
		EmergencyContact:     dto.EmergencyContact,
		DepartmentID:         dto.DepartmentID,
		PositionID:           dto.PositionID,
		ManagerID:            dto.ManagerID,
		Role:                 authz.Role(dto.Role),
		Status:               StatusActive,
		HireDate:             hireDate,
		MedicalLicenseNumber: dto.MedicalLicenseNumber,
		MedicalLicenseExpiry: dto.MedicalLicenseExpiry,
		IsActive:             true,
	}
	if createdBy != "" {
		e.CreatedBy = &createdBy
	}

	year := hireDate.Year()
	prefix := NumberPrefix(deptCode, year)

	for attempt := 1; attempt <= numberAllocationAttempts; attempt++ {
		last, err := s.repo.LastNumberForPrefix(ctx, prefix)
		if err != nil {
			return nil, internal.TranslateDBError(err, "employee")
		}

		number, err := NextNumber(deptCode, year, last)
		if err != nil {
			return nil, err
		}
		e.EmployeeNumber = number

		err = s.repo.Create(ctx, e)
		if err == nil {
			s.logger.Info("employee created",
				"employee_id", e.ID,
				"employee_number", e.EmployeeNumber,
				"department_id", e.DepartmentID)
			return e, nil
		}

		if internal.IsUniqueViolation(err, "employees_employee_number_key") && attempt < numberAllocationAttempts {
			s.logger.Warn("employee number collision, retrying",
				"candidate", number, "attempt", attempt)
			continue
		}

		return nil, internal.TranslateDBError(err, "employee")
	}

	return nil, internal.NewConflictError("employee already exists", internal.ErrCodeAlreadyExists)
}

func (s *Service) GetByID(ctx context.Context, id string) (*Employee, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "employee")
	}
	return e, nil
}

func (s *Service) Search(ctx context.Context, params SearchParams) (*ListResult, error) {
	params.Normalize()
	if params.Status != "" && !Status(params.Status).Valid() {
		return nil, internal.NewValidationFieldError("status", "unknown status filter", internal.ErrCodeValidationFailed)
	}

	employees, total, err := s.repo.Search(ctx, params)
	if err != nil {
		return nil, internal.TranslateDBError(err, "employee")
	}

	return &ListResult{
		Employees: employees,
		Total:     total,
		Page:      params.Page,
		PerPage:   params.PerPage,
	}, nil
}

// Update modifies profile fields. Employee number and status are not
// updatable here; status changes go through ChangeStatus.
func (s *Service) Update(ctx context.Context, id string, dto UpdateEmployeeDTO, updatedBy string) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "employee")
	}

	if dto.Email != nil {
		e.Email = *dto.Email
	}
	if dto.FirstName != nil {
		e.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		e.LastName = *dto.LastName
	}
	if dto.Phone != nil {
		e.Phone = *dto.Phone
	}
	if dto.DateOfBirth != nil {
		e.DateOfBirth = dto.DateOfBirth
	}
	if dto.Address != nil {
		e.Address = dto.Address
	}
	if dto.EmergencyContact != nil {
		e.EmergencyContact = dto.EmergencyContact
	}
	if dto.DepartmentID != nil {
		e.DepartmentID = *dto.DepartmentID
	}
	if dto.PositionID != nil {
		e.PositionID = *dto.PositionID
	}
	if dto.ManagerID != nil {
		e.ManagerID = dto.ManagerID
	}
	if dto.Role != nil {
		e.Role = authz.Role(*dto.Role)
	}
	if dto.MedicalLicenseNumber != nil {
		e.MedicalLicenseNumber = *dto.MedicalLicenseNumber
	}
	if dto.MedicalLicenseExpiry != nil {
		e.MedicalLicenseExpiry = dto.MedicalLicenseExpiry
	}
	if dto.IsActive != nil {
		e.IsActive = *dto.IsActive
	}
	if updatedBy != "" {
		e.UpdatedBy = &updatedBy
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, internal.TranslateDBError(err, "employee")
	}

	s.logger.Info("employee updated", "employee_id", e.ID)
	return e, nil
}

// ChangeStatus moves an employee along the lifecycle table. The repository
// performs the write guarded by the status read here; a concurrent change
// between read and write surfaces as a conflict.
func (s *Service) ChangeStatus(ctx context.Context, id string, dto ChangeStatusDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "employee")
	}

	from := e.Status
	to := Status(dto.Status)
	if appErr := ValidateTransition(from, to); appErr != nil {
		return nil, appErr
	}

	var terminationDate *time.Time
	if to == StatusTerminated {
		terminationDate = dto.TerminationDate
	}

	if err := s.repo.TransitionStatus(ctx, id, from, to, terminationDate); err != nil {
		return nil, err
	}

	s.logger.Info("employee status changed",
		"employee_id", id, "from", from, "to", to)

	e.Status = to
	e.TerminationDate = terminationDate
	return e, nil
}

// ListManagers returns active employees eligible to manage others.
func (s *Service) ListManagers(ctx context.Context) ([]Employee, error) {
	managers, err := s.repo.ListManagers(ctx)
	if err != nil {
		return nil, internal.TranslateDBError(err, "employee")
	}
	return managers, nil
}
