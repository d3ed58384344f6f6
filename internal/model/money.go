package model

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders v as a dollar label, e.g. "$219.99".
func FormatMoney(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}
