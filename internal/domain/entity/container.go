package entity

import "github.com/shopspring/decimal"

// Container representa una caja/registradora con su monto objetivo y umbrales de varianza.
// Los montos se guardan como NUMERIC(12,2); nunca como float.
type Container struct {
	ID           int64
	CompanyCode  string
	Name         string
	Target       decimal.Decimal
	PosThreshold decimal.Decimal
	NegThreshold decimal.Decimal
}

// Normalize fija los montos a 2 decimales.
func (c *Container) Normalize() {
	c.Target = c.Target.Round(2)
	c.PosThreshold = c.PosThreshold.Round(2)
	c.NegThreshold = c.NegThreshold.Round(2)
}

// ContainerUpdate actualización parcial (lista blanca). nil = no modificar.
type ContainerUpdate struct {
	Name         *string
	Target       *decimal.Decimal
	PosThreshold *decimal.Decimal
	NegThreshold *decimal.Decimal
}

// IsEmpty indica si no se pidió ningún cambio.
func (u ContainerUpdate) IsEmpty() bool {
	return u.Name == nil && u.Target == nil && u.PosThreshold == nil && u.NegThreshold == nil
}

// Apply aplica los campos presentes sobre el contenedor.
func (u ContainerUpdate) Apply(c *Container) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Target != nil {
		c.Target = *u.Target
	}
	if u.PosThreshold != nil {
		c.PosThreshold = *u.PosThreshold
	}
	if u.NegThreshold != nil {
		c.NegThreshold = *u.NegThreshold
	}
	c.Normalize()
}
