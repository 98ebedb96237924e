package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/domain"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas.
type CompanyUseCase struct {
	companies  repository.CompanyRepository
	containers repository.ContainerRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(companies repository.CompanyRepository, containers repository.ContainerRepository) *CompanyUseCase {
	return &CompanyUseCase{companies: companies, containers: containers}
}

// Create crea una empresa. Devuelve domain.ErrConflict si el código ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	code := strings.TrimSpace(in.CompanyCode)
	if code == "" {
		return nil, fmt.Errorf("%w: companyCode requerido", domain.ErrInvalidInput)
	}
	c := &entity.Company{Code: code}
	if err := uc.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CompanyResponse{CompanyCode: c.Code, Containers: []dto.ContainerResponse{}}, nil
}

// Get devuelve la empresa con sus contenedores (lista vacía permitida).
func (uc *CompanyUseCase) Get(ctx context.Context, code string) (*dto.CompanyResponse, error) {
	c, err := uc.companies.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.containers.ListByCompany(ctx, code)
	if err != nil {
		return nil, err
	}
	out := &dto.CompanyResponse{CompanyCode: c.Code, Containers: make([]dto.ContainerResponse, 0, len(list))}
	for _, ct := range list {
		out.Containers = append(out.Containers, *dto.ToContainerResponse(ct))
	}
	return out, nil
}
