package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/CashCount-api/internal/application/auth"
	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/application/ports"
	"github.com/jhoicas/CashCount-api/internal/domain"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
	"github.com/jhoicas/CashCount-api/pkg/jwt"
	"github.com/jhoicas/CashCount-api/pkg/money"
)

// ContainerUseCase alta, consulta y edición de contenedores.
// Las lecturas se limitan a la empresa del caller; fuera de ella se responde NotFound.
type ContainerUseCase struct {
	tx         ports.TxRunner
	companies  repository.CompanyRepository
	containers repository.ContainerRepository
}

// NewContainerUseCase construye el caso de uso.
func NewContainerUseCase(tx ports.TxRunner, companies repository.CompanyRepository, containers repository.ContainerRepository) *ContainerUseCase {
	return &ContainerUseCase{tx: tx, companies: companies, containers: containers}
}

// Create inserta un contenedor con montos normalizados a 2 decimales.
func (uc *ContainerUseCase) Create(ctx context.Context, companyCode string, in dto.CreateContainerRequest) (*dto.ContainerResponse, error) {
	if in.Target == nil || in.PosThreshold == nil || in.NegThreshold == nil {
		return nil, fmt.Errorf("%w: target, posThreshold y negThreshold son obligatorios", domain.ErrInvalidInput)
	}
	c := &entity.Container{
		CompanyCode:  companyCode,
		Name:         strings.TrimSpace(in.Name),
		Target:       *in.Target,
		PosThreshold: *in.PosThreshold,
		NegThreshold: *in.NegThreshold,
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%w: name requerido", domain.ErrInvalidInput)
	}
	c.Normalize()
	if err := validateAmounts(c); err != nil {
		return nil, err
	}
	if err := uc.containers.Create(ctx, c); err != nil {
		return nil, err
	}
	return dto.ToContainerResponse(c), nil
}

// Get devuelve un contenedor visible para el caller.
func (uc *ContainerUseCase) Get(ctx context.Context, caller *jwt.Identity, id int64) (*dto.ContainerResponse, error) {
	c, err := uc.containers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || !auth.CanAccessCompany(caller, c.CompanyCode) {
		return nil, domain.ErrNotFound
	}
	return dto.ToContainerResponse(c), nil
}

// List contenedores de la empresa. Una empresa sin contenedores devuelve lista vacía;
// una empresa inexistente o ajena devuelve NotFound.
func (uc *ContainerUseCase) List(ctx context.Context, caller *jwt.Identity, companyCode string) (*dto.ContainerListResponse, error) {
	if !auth.CanAccessCompany(caller, companyCode) {
		return nil, domain.ErrNotFound
	}
	company, err := uc.companies.GetByCode(ctx, companyCode)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.containers.ListByCompany(ctx, companyCode)
	if err != nil {
		return nil, err
	}
	out := &dto.ContainerListResponse{Containers: make([]dto.ContainerResponse, 0, len(list))}
	for _, c := range list {
		out.Containers = append(out.Containers, *dto.ToContainerResponse(c))
	}
	return out, nil
}

// Update actualización parcial. El contenedor debe pertenecer a companyCode (ErrUnauthorized si no).
func (uc *ContainerUseCase) Update(ctx context.Context, id int64, companyCode string, upd entity.ContainerUpdate) (*dto.ContainerResponse, error) {
	if upd.IsEmpty() {
		return nil, domain.ErrNoData
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("%w: name vacío", domain.ErrInvalidInput)
	}
	var out *entity.Container
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		c, err := s.Containers.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if c.CompanyCode != companyCode {
			return domain.ErrUnauthorized
		}
		upd.Apply(c)
		if err := validateAmounts(c); err != nil {
			return err
		}
		if err := s.Containers.Update(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToContainerResponse(out), nil
}

func validateAmounts(c *entity.Container) error {
	if c.PosThreshold.LessThan(decimal.Zero) || c.NegThreshold.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: los umbrales no pueden ser negativos", domain.ErrInvalidInput)
	}
	if c.Target.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: target no puede ser negativo", domain.ErrInvalidInput)
	}
	if !money.InRange(c.Target) || !money.InRange(c.PosThreshold) || !money.InRange(c.NegThreshold) {
		return fmt.Errorf("%w: monto fuera de rango (máximo %s)", domain.ErrInvalidInput, money.MaxAmount.StringFixed(2))
	}
	return nil
}
