package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/CashCount-api/pkg/money"
)

func TestFormat_GroupsThousands(t *testing.T) {
	f := money.Default()
	assert.Equal(t, "$1,234.50", f.Format(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.00", f.Format(decimal.Zero))
}

func TestFormat_NegativeKeepsSignOutsideSymbol(t *testing.T) {
	f := money.Default()
	assert.Equal(t, "-$3.00", f.Format(decimal.RequireFromString("-3")))
}

func TestInRange_NumericPrecision(t *testing.T) {
	assert.True(t, money.InRange(decimal.RequireFromString("9999999999.99")))
	assert.True(t, money.InRange(decimal.RequireFromString("-9999999999.99")))
	assert.False(t, money.InRange(decimal.RequireFromString("10000000000")))
	assert.False(t, money.InRange(decimal.RequireFromString("9999999999.995")), "el redondeo puede desbordar")
	assert.False(t, money.InRange(decimal.RequireFromString("-1e11")))
}
