package repository

import (
	"context"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByCode(ctx context.Context, code string) (*entity.Company, error)
}
