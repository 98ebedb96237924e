package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

// CreateCountRequest conteo enviado por un usuario contra un contenedor.
type CreateCountRequest struct {
	UserID    string           `json:"userId" validate:"required"`
	Cash      *decimal.Decimal `json:"cash" validate:"required"`
	Time      string           `json:"time" validate:"required,max=100"`
	Timestamp int64            `json:"timestamp" validate:"required,gt=0"`
	Note      string           `json:"note" validate:"max=500"`
}

// CountResponse conteo serializado; FirstName/LastName solo en listados.
type CountResponse struct {
	ID          int64   `json:"id"`
	ContainerID int64   `json:"containerId"`
	Cash        string  `json:"cash"`
	Time        string  `json:"time"`
	Timestamp   int64   `json:"timestamp"`
	Note        *string `json:"note"`
	UserID      string  `json:"userId"`
	FirstName   string  `json:"firstName,omitempty"`
	LastName    string  `json:"lastName,omitempty"`
}

// CountListResponse conteos del rango pedido.
type CountListResponse struct {
	Counts []CountResponse `json:"counts"`
}

// ToCountResponse serializa un conteo.
func ToCountResponse(c *entity.Count) *CountResponse {
	if c == nil {
		return nil
	}
	out := &CountResponse{
		ID:          c.ID,
		ContainerID: c.ContainerID,
		Cash:        c.Cash.StringFixed(2),
		Time:        c.Time,
		Timestamp:   c.Timestamp,
		UserID:      c.UserID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
	}
	if c.Note != "" {
		note := c.Note
		out.Note = &note
	}
	return out
}
