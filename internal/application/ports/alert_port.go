package ports

import (
	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

// AlertPublisher entrega avisos de forma asíncrona (fire-and-forget).
// Los métodos no bloquean ni devuelven errores de transporte al caller.
type AlertPublisher interface {
	PublishVarianceAlert(alert dto.VarianceAlert)
	PublishPasswordReset(user entity.User, newPassword string)
}
