package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Spanish)

// FormatQuantity formatea una cantidad con separador de miles en español ("1.250", "-3.000").
func FormatQuantity(n int64) string {
	return printer.Sprintf("%d", n)
}
