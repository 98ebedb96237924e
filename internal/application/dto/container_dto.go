package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

// CreateContainerRequest alta de contenedor.
type CreateContainerRequest struct {
	Name         string           `json:"name" validate:"required,min=1,max=50"`
	Target       *decimal.Decimal `json:"target" validate:"required"`
	PosThreshold *decimal.Decimal `json:"posThreshold" validate:"required"`
	NegThreshold *decimal.Decimal `json:"negThreshold" validate:"required"`
}

// UpdateContainerRequest actualización parcial (sin empresa: la propiedad es inmutable).
type UpdateContainerRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=50"`
	Target       *decimal.Decimal `json:"target"`
	PosThreshold *decimal.Decimal `json:"posThreshold"`
	NegThreshold *decimal.Decimal `json:"negThreshold"`
}

// ToEntity convierte a la actualización de dominio.
func (r UpdateContainerRequest) ToEntity() entity.ContainerUpdate {
	return entity.ContainerUpdate{
		Name:         r.Name,
		Target:       r.Target,
		PosThreshold: r.PosThreshold,
		NegThreshold: r.NegThreshold,
	}
}

// ContainerResponse montos serializados a 2 decimales fijos.
type ContainerResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CompanyCode  string `json:"companyCode"`
	Target       string `json:"target"`
	PosThreshold string `json:"posThreshold"`
	NegThreshold string `json:"negThreshold"`
}

// ContainerListResponse contenedores de una empresa.
type ContainerListResponse struct {
	Containers []ContainerResponse `json:"containers"`
}

// ToContainerResponse normaliza montos a "0.00".
func ToContainerResponse(c *entity.Container) *ContainerResponse {
	if c == nil {
		return nil
	}
	return &ContainerResponse{
		ID:           c.ID,
		Name:         c.Name,
		CompanyCode:  c.CompanyCode,
		Target:       c.Target.StringFixed(2),
		PosThreshold: c.PosThreshold.StringFixed(2),
		NegThreshold: c.NegThreshold.StringFixed(2),
	}
}
