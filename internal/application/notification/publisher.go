package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/application/ports"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
	"github.com/jhoicas/CashCount-api/pkg/logger"
)

// Publisher implementa ports.AlertPublisher encolando trabajos en el Dispatcher.
// Los destinatarios de un aviso de varianza se resuelven dentro del worker.
type Publisher struct {
	dispatcher  *Dispatcher
	notifier    ports.Notifier
	memberships repository.MembershipRepository
	log         *logger.Logger
}

// NewPublisher construye el publicador.
func NewPublisher(d *Dispatcher, n ports.Notifier, memberships repository.MembershipRepository, log *logger.Logger) *Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &Publisher{dispatcher: d, notifier: n, memberships: memberships, log: log.Component("notify")}
}

// PublishVarianceAlert encola el aviso para todos los administradores suscritos de la empresa.
func (p *Publisher) PublishVarianceAlert(alert dto.VarianceAlert) {
	p.enqueue(Job{
		Name: "variance-alert:" + uuid.NewString(),
		Run: func(ctx context.Context) error {
			recipients, err := p.memberships.ListEmailReceivers(ctx, alert.CompanyCode)
			if err != nil {
				return fmt.Errorf("destinatarios de %s: %w", alert.CompanyCode, err)
			}
			if len(recipients) == 0 {
				p.log.Info().Str("company", alert.CompanyCode).Msg("sin administradores suscritos, aviso omitido")
				return nil
			}
			var errs []error
			for _, r := range recipients {
				if r.Email == "" {
					continue
				}
				if err := p.notifier.SendVarianceAlert(ctx, r, alert); err != nil {
					errs = append(errs, fmt.Errorf("aviso a %s: %w", r.ID, err))
				}
			}
			return errors.Join(errs...)
		},
	})
}

// PublishPasswordReset encola el correo con la nueva credencial.
func (p *Publisher) PublishPasswordReset(user entity.User, newPassword string) {
	p.enqueue(Job{
		Name: "password-reset:" + uuid.NewString(),
		Run: func(ctx context.Context) error {
			return p.notifier.SendPasswordReset(ctx, &user, newPassword)
		},
	})
}

func (p *Publisher) enqueue(job Job) {
	if err := p.dispatcher.Enqueue(job); err != nil {
		p.log.Warn().Err(err).Str("job", job.Name).Msg("aviso no encolado")
	}
}

var _ ports.AlertPublisher = (*Publisher)(nil)
