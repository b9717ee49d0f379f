package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var coinPrinter = message.NewPrinter(language.English)

// FormatCoins renders an amount with English thousands grouping, e.g. 14,000,000.
func FormatCoins(amount uint64) string {
	return coinPrinter.Sprintf("%d", amount)
}
