package ports

import (
	"context"

	"github.com/jhoicas/CashCount-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una sola transacción.
// Si fn devuelve error se hace rollback; si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(store repository.Store) error) error
}
