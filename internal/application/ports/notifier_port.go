package ports

import (
	"context"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

// Notifier define el puerto de salida para avisos por correo.
// Los adaptadores (SMTP, log) no deben bloquear el flujo de la petición: el caso de uso
// los invoca siempre desde el Dispatcher.
type Notifier interface {
	SendVarianceAlert(ctx context.Context, recipient *entity.User, alert dto.VarianceAlert) error
	SendPasswordReset(ctx context.Context, user *entity.User, newPassword string) error
}
