package shell

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const timestampLayout = "2006-01-02 15:04:05"

// formatMoney renders amount in the display conventions of currency code,
// rounded to the currency's minor unit.
func formatMoney(amount decimal.Decimal, code string) string {
	// money.New never returns a nil currency, even for unknown codes
	cur := money.New(0, code).Currency()
	return cur.Formatter().Format(amount.Shift(int32(cur.Fraction)).Round(0).IntPart())
}
