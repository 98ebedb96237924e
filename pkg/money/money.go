// Package money formatea montos decimal.Decimal para correos y reportes.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MaxAmount límite exclusivo de una columna NUMERIC(12,2).
var MaxAmount = decimal.New(1, 10)

// InRange indica si d, redondeado a 2 decimales, cabe en NUMERIC(12,2).
func InRange(d decimal.Decimal) bool {
	return d.Round(2).Abs().LessThan(MaxAmount)
}

// Formatter agrupa miles según el locale y fija 2 decimales.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter crea un formateador para el locale (ej. "en-US", "es-CO").
// Un locale inválido cae en inglés de EE. UU.
func NewFormatter(locale, symbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return &Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Default en-US con "$".
func Default() *Formatter {
	return NewFormatter("en-US", "$")
}

// Format "$1,234.50" / "-$3.00". El valor se redondea a 2 decimales antes de imprimir.
func (f *Formatter) Format(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + f.symbol + f.printer.Sprint(number.Decimal(d.InexactFloat64(), number.Scale(2)))
}
