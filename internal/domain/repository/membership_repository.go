package repository

import (
	"context"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

// MembershipRepository persiste la relación usuario↔empresa.
// Put reemplaza la variante anterior (admin ↔ user); debe ejecutarse dentro de una transacción.
type MembershipRepository interface {
	Get(ctx context.Context, userID string) (entity.Membership, error)
	Put(ctx context.Context, m entity.Membership) error
	// ListEmailReceivers devuelve los administradores de la empresa suscritos a avisos.
	ListEmailReceivers(ctx context.Context, companyCode string) ([]*entity.User, error)
}
