// Package ledger registra los conteos de caja y dispara la evaluación de varianza.
package ledger

import (
	"context"
	"fmt"
	"math"

	"github.com/jhoicas/CashCount-api/internal/application/auth"
	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/application/ports"
	"github.com/jhoicas/CashCount-api/internal/domain"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
	"github.com/jhoicas/CashCount-api/internal/domain/variance"
	"github.com/jhoicas/CashCount-api/pkg/jwt"
	"github.com/jhoicas/CashCount-api/pkg/logger"
	"github.com/jhoicas/CashCount-api/pkg/money"
)

// CountUseCase alta y consulta del flujo de conteos.
type CountUseCase struct {
	tx         ports.TxRunner
	containers repository.ContainerRepository
	counts     repository.CountRepository
	alerts     ports.AlertPublisher
	report     ports.CountReportGenerator
	log        *logger.Logger
}

// NewCountUseCase construye el caso de uso. report puede ser nil si no se expone el PDF.
func NewCountUseCase(
	tx ports.TxRunner,
	containers repository.ContainerRepository,
	counts repository.CountRepository,
	alerts ports.AlertPublisher,
	report ports.CountReportGenerator,
	log *logger.Logger,
) *CountUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CountUseCase{
		tx:         tx,
		containers: containers,
		counts:     counts,
		alerts:     alerts,
		report:     report,
		log:        log.Component("ledger"),
	}
}

// Submit registra un conteo. Antes de insertar, el usuario del conteo debe ser super admin
// o miembro activo (o administrador) de la empresa dueña del contenedor; el caller debe ser
// ese mismo usuario, super admin o administrador de la empresa.
// Tras el commit evalúa la varianza y, si hay desvío, publica el aviso sin esperar la entrega.
func (uc *CountUseCase) Submit(ctx context.Context, caller *jwt.Identity, containerID int64, in dto.CreateCountRequest) (*dto.CountResponse, error) {
	if in.UserID == "" || in.Cash == nil || in.Time == "" || in.Timestamp <= 0 {
		return nil, fmt.Errorf("%w: userId, cash, time y timestamp son obligatorios", domain.ErrInvalidInput)
	}
	if !money.InRange(*in.Cash) {
		return nil, fmt.Errorf("%w: cash fuera de rango (máximo %s)", domain.ErrInvalidInput, money.MaxAmount.StringFixed(2))
	}
	var (
		container *entity.Container
		submitter *entity.UserProfile
		count     *entity.Count
	)
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		c, err := s.Containers.GetByID(ctx, containerID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if caller == nil || (caller.ID != in.UserID && !auth.IsCompanyAdmin(caller, c.CompanyCode)) {
			return domain.ErrUnauthorized
		}
		p, err := s.Users.GetProfile(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !maySubmit(p, c.CompanyCode) {
			return domain.ErrUnauthorized
		}
		cnt := &entity.Count{
			ContainerID: c.ID,
			Cash:        in.Cash.Round(2),
			Time:        in.Time,
			Timestamp:   in.Timestamp,
			Note:        in.Note,
			UserID:      in.UserID,
		}
		if err := s.Counts.Create(ctx, cnt); err != nil {
			return err
		}
		container, submitter, count = c, p, cnt
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := variance.Evaluate(*container, count.Cash)
	if res.Breach {
		uc.log.Info().
			Int64("container", container.ID).
			Str("company", container.CompanyCode).
			Str("variance", res.Rounded.StringFixed(2)).
			Msg("varianza fuera de umbral")
		uc.alerts.PublishVarianceAlert(dto.VarianceAlert{
			CompanyCode:   container.CompanyCode,
			ContainerName: container.Name,
			Target:        container.Target,
			PosThreshold:  container.PosThreshold,
			NegThreshold:  container.NegThreshold,
			Variance:      res.Rounded,
			Count:         *count,
			Submitted:     in,
			UserName:      submitter.User.DisplayName(),
		})
	}
	return dto.ToCountResponse(count), nil
}

// maySubmit super admin, o membresía activa en la empresa del contenedor.
func maySubmit(p *entity.UserProfile, companyCode string) bool {
	if p == nil {
		return false
	}
	if p.User.SuperAdmin {
		return true
	}
	return p.Membership.BelongsTo(companyCode) && p.Membership.IsActive()
}

// Window construye el rango inclusivo; los extremos en 0 quedan abiertos.
func Window(start, end int64) (entity.CountWindow, error) {
	if end <= 0 {
		end = math.MaxInt64
	}
	if start < 0 || start > end {
		return entity.CountWindow{}, fmt.Errorf("%w: rango de tiempo inválido", domain.ErrInvalidInput)
	}
	return entity.CountWindow{Start: start, End: end}, nil
}

// List conteos del contenedor dentro del rango, más recientes primero (lista vacía permitida).
func (uc *CountUseCase) List(ctx context.Context, caller *jwt.Identity, containerID int64, w entity.CountWindow) (*dto.CountListResponse, error) {
	_, list, err := uc.load(ctx, caller, containerID, w)
	if err != nil {
		return nil, err
	}
	out := &dto.CountListResponse{Counts: make([]dto.CountResponse, 0, len(list))}
	for _, c := range list {
		out.Counts = append(out.Counts, *dto.ToCountResponse(c))
	}
	return out, nil
}

// Report genera el PDF del historial de conteos del rango.
func (uc *CountUseCase) Report(ctx context.Context, caller *jwt.Identity, containerID int64, w entity.CountWindow) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("%w: reporte no configurado", domain.ErrDependency)
	}
	c, list, err := uc.load(ctx, caller, containerID, w)
	if err != nil {
		return nil, err
	}
	return uc.report.GenerateCountReport(c, list, w)
}

func (uc *CountUseCase) load(ctx context.Context, caller *jwt.Identity, containerID int64, w entity.CountWindow) (*entity.Container, []*entity.Count, error) {
	c, err := uc.containers.GetByID(ctx, containerID)
	if err != nil {
		return nil, nil, err
	}
	if c == nil || !auth.CanAccessCompany(caller, c.CompanyCode) {
		return nil, nil, domain.ErrNotFound
	}
	list, err := uc.counts.ListByContainer(ctx, containerID, w)
	if err != nil {
		return nil, nil, err
	}
	return c, list, nil
}
