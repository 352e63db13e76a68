package service

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var thaiPrinter = message.NewPrinter(language.Thai)

// formatAmount renders a baht amount with Thai-locale digit grouping,
// e.g. 12345 becomes "12,345".
func formatAmount(amount float64) string {
	return thaiPrinter.Sprint(number.Decimal(amount))
}
