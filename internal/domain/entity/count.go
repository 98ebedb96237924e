package entity

import "github.com/shopspring/decimal"

// Count es un arqueo de caja: solo se inserta, nunca se modifica ni se borra.
type Count struct {
	ID          int64
	ContainerID int64
	Cash        decimal.Decimal
	Time        string // fecha formateada para mostrar
	Timestamp   int64  // epoch en milisegundos, ordenable
	Note        string
	UserID      string

	// Solo en listados (JOIN con users).
	FirstName string
	LastName  string
}

// CountWindow rango inclusivo de timestamps para listar conteos.
type CountWindow struct {
	Start int64
	End   int64
}

// Contains indica si el timestamp cae dentro del rango.
func (w CountWindow) Contains(ts int64) bool {
	return ts >= w.Start && ts <= w.End
}
