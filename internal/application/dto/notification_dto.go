package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

// VarianceAlert datos del aviso de varianza que se entrega a cada administrador suscrito.
type VarianceAlert struct {
	CompanyCode   string
	ContainerName string
	Target        decimal.Decimal
	PosThreshold  decimal.Decimal
	NegThreshold  decimal.Decimal
	Variance      decimal.Decimal // redondeada a 2 decimales
	Count         entity.Count       // fila guardada, cash a 2 decimales
	Submitted     CreateCountRequest // payload tal como lo envió el usuario
	UserName      string
}
