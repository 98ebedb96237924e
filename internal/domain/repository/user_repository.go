package repository

import (
	"context"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) cuando no existe la fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// GetProfile resuelve usuario + membresía en una sola lectura.
	GetProfile(ctx context.Context, id string) (*entity.UserProfile, error)
	// ListByCompany devuelve los usuarios con cualquier membresía en la empresa.
	ListByCompany(ctx context.Context, companyCode string) ([]*entity.UserProfile, error)
}
