package mail

import (
	"context"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/application/ports"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/pkg/logger"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier registra los avisos en el log en lugar de enviarlos (SMTP_HOST vacío).
// Nunca registra la credencial generada.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador de solo log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log.Component("mail")}
}

func (n *LogNotifier) SendVarianceAlert(_ context.Context, recipient *entity.User, alert dto.VarianceAlert) error {
	n.log.Info().
		Str("to", recipient.Email).
		Str("company", alert.CompanyCode).
		Str("container", alert.ContainerName).
		Str("variance", alert.Variance.StringFixed(2)).
		Str("user", alert.UserName).
		Msg("aviso de varianza (smtp deshabilitado)")
	return nil
}

func (n *LogNotifier) SendPasswordReset(_ context.Context, user *entity.User, _ string) error {
	n.log.Info().Str("to", user.Email).Str("user", user.ID).Msg("restablecimiento de contraseña (smtp deshabilitado)")
	return nil
}
