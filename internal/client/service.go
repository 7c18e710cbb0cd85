package client

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/clinicore/hr-management/internal"
)

type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error
	ProjectCount(ctx context.Context, id string) (int64, error)
}

type Service struct {
	repo       Repository
	logger     *slog.Logger
	bcryptCost int
}

func NewService(repo Repository, logger *slog.Logger, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, logger: logger, bcryptCost: bcryptCost}
}

func (s *Service) Create(ctx context.Context, dto CreateClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		ID:            uuid.NewString(),
		CompanyName:   dto.CompanyName,
		ContactPerson: dto.ContactPerson,
		ContactEmail:  dto.ContactEmail,
		ContactPhone:  dto.ContactPhone,
		Address:       dto.Address,
		IsActive:      true,
	}

	if dto.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		c.PasswordHash = string(hash)
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, internal.TranslateDBError(err, "client")
	}

	s.logger.Info("client created", "client_id", c.ID, "company", c.CompanyName)
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Client, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "client")
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.TranslateDBError(err, "client")
	}
	return clients, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.TranslateDBError(err, "client")
	}

	if dto.CompanyName != nil {
		c.CompanyName = *dto.CompanyName
	}
	if dto.ContactPerson != nil {
		c.ContactPerson = *dto.ContactPerson
	}
	if dto.ContactEmail != nil {
		c.ContactEmail = *dto.ContactEmail
	}
	if dto.ContactPhone != nil {
		c.ContactPhone = *dto.ContactPhone
	}
	if dto.Address != nil {
		c.Address = *dto.Address
	}
	if dto.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), s.bcryptCost)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		c.PasswordHash = string(hash)
	}
	if dto.IsActive != nil {
		c.IsActive = *dto.IsActive
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, internal.TranslateDBError(err, "client")
	}

	s.logger.Info("client updated", "client_id", c.ID)
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return internal.TranslateDBError(err, "client")
	}

	count, err := s.repo.ProjectCount(ctx, id)
	if err != nil {
		return internal.TranslateDBError(err, "client")
	}
	if count > 0 {
		return internal.NewReferentialError(
			"client is still referenced by projects", internal.ErrCodeReferenceMissing)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return internal.TranslateDBError(err, "client")
	}

	s.logger.Info("client deleted", "client_id", id)
	return nil
}
