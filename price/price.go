// Package price formats raw catalog amounts for display.
// Catalog amounts are stored as integer cents.
package price

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol is prefixed to every formatted amount
const CurrencySymbol = "$"

var printer = message.NewPrinter(language.English)

// ParseRawPrice turns an amount in cents into a display string such as "$17.98".
// Thousands are grouped ("$1,234.50") and negative amounts lead with a minus.
func ParseRawPrice(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + CurrencySymbol + printer.Sprintf("%.2f", float64(cents)/100)
}

// Pricing holds the box-level amounts, in cents
type Pricing struct {
	PerServing int `yaml:"per_serving" json:"per_serving"`
	Shipping   int `yaml:"shipping" json:"shipping"`
}
