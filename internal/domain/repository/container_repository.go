package repository

import (
	"context"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

// ContainerRepository define el puerto de persistencia para Container.
type ContainerRepository interface {
	Create(ctx context.Context, c *entity.Container) error
	GetByID(ctx context.Context, id int64) (*entity.Container, error)
	ListByCompany(ctx context.Context, companyCode string) ([]*entity.Container, error)
	Update(ctx context.Context, c *entity.Container) error
}
