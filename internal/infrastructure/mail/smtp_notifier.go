// Package mail implementa ports.Notifier: SMTP vía gomail o solo log.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/application/ports"
	"github.com/jhoicas/CashCount-api/internal/domain"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/pkg/config"
	"github.com/jhoicas/CashCount-api/pkg/money"
)

// Sender abstrae el envío (gomail.Dialer en producción).
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

var _ ports.Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier envía los avisos por correo.
type SMTPNotifier struct {
	sender Sender
	from   string
	money  *money.Formatter
}

// NewSMTPNotifier construye el notificador con un gomail.Dialer.
func NewSMTPNotifier(cfg config.SMTPConfig, f *money.Formatter) *SMTPNotifier {
	return NewSMTPNotifierWithSender(gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), cfg.From, f)
}

// NewSMTPNotifierWithSender permite inyectar el transporte.
func NewSMTPNotifierWithSender(s Sender, from string, f *money.Formatter) *SMTPNotifier {
	if f == nil {
		f = money.Default()
	}
	return &SMTPNotifier{sender: s, from: from, money: f}
}

// SendVarianceAlert envía el aviso de varianza a un administrador.
func (n *SMTPNotifier) SendVarianceAlert(ctx context.Context, recipient *entity.User, alert dto.VarianceAlert) error {
	body, err := renderVariance(n.money, recipient, alert)
	if err != nil {
		return err
	}
	return n.send(ctx, recipient.Email, varianceSubject(alert), body)
}

// SendPasswordReset envía la nueva credencial al usuario.
func (n *SMTPNotifier) SendPasswordReset(ctx context.Context, user *entity.User, newPassword string) error {
	body, err := renderReset(user, newPassword)
	if err != nil {
		return err
	}
	return n.send(ctx, user.Email, "Restablecimiento de contraseña", body)
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("%w: destinatario sin email", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp %s: %w: %v", to, domain.ErrDependency, err)
	}
	return nil
}
