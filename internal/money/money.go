// Package money formats Chilean peso amounts the way the tickets print them:
// dollar sign, dot thousands separators, no decimals.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-CL"))

// FormatCLP renders an amount in pesos, e.g. 5000 -> "$5.000".
func FormatCLP(amount int64) string {
	return printer.Sprintf("$%v", number.Decimal(amount))
}
