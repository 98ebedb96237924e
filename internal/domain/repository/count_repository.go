package repository

import (
	"context"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

// CountRepository persiste el flujo de conteos (solo inserción).
type CountRepository interface {
	Create(ctx context.Context, c *entity.Count) error
	// ListByContainer devuelve los conteos del rango, más recientes primero, con nombre del usuario.
	ListByContainer(ctx context.Context, containerID int64, w entity.CountWindow) ([]*entity.Count, error)
}
