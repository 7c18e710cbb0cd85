package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/clinicore/hr-management/internal/client"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *client.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *Repository) GetByID(ctx context.Context, id string) (*client.Client, error) {
	var c client.Client
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) List(ctx context.Context) ([]client.Client, error) {
	var clients []client.Client
	err := r.db.WithContext(ctx).Order("company_name").Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *Repository) Update(ctx context.Context, c *client.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&client.Client{}, "id = ?", id).Error
}

func (r *Repository) ProjectCount(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("projects").
		Where("client_id = ?", id).Count(&count).Error
	return count, err
}
