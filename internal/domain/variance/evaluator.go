// Package variance contiene la regla de negocio que decide si un conteo
// se desvía lo suficiente del objetivo como para avisar a los administradores.
package variance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

var half = decimal.NewFromFloat(0.5)

// Result resultado de evaluar un conteo contra su contenedor.
type Result struct {
	Variance decimal.Decimal // cash - target, sin redondear
	Rounded  decimal.Decimal // Variance a 2 decimales (half-up)
	Breach   bool
}

// Evaluate calcula la varianza y la compara con los umbrales:
// sobrante si variance >= posThreshold, faltante si variance <= -negThreshold.
// Los límites exactos disparan.
func Evaluate(c entity.Container, cash decimal.Decimal) Result {
	v := cash.Sub(c.Target)
	breach := v.GreaterThanOrEqual(c.PosThreshold) || v.LessThanOrEqual(c.NegThreshold.Neg())
	return Result{
		Variance: v,
		Rounded:  RoundHalfUp(v, 2),
		Breach:   breach,
	}
}

// RoundHalfUp redondea hacia +infinito en el punto medio (-1.005 → -1.00, 1.005 → 1.01),
// que es la convención de Math.round usada en la visualización de montos.
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}
