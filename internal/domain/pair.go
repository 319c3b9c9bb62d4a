package domain

import (
	"regexp"
	"slices"
	"strings"
)

// DateLayout is the ISO 8601 calendar-day format used for Rate.Date.
const DateLayout = "2006-01-02"

var currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)

func ValidCurrency(c string) bool {
	return currencyRe.MatchString(c)
}

// SymbolFromPair strips the base prefix from a six-letter pair code
// (EURUSD with base EUR yields USD). Keys without the prefix are returned as is.
func SymbolFromPair(base, pair string) string {
	return strings.TrimPrefix(pair, base)
}

// RatesFromQuotes maps a quote set onto rows for the given day, ordered by pair key.
func RatesFromQuotes(base string, quotes map[string]float64, date string) []Rate {
	pairs := make([]string, 0, len(quotes))
	for pair := range quotes {
		pairs = append(pairs, pair)
	}
	slices.Sort(pairs)

	rows := make([]Rate, 0, len(pairs))
	for _, pair := range pairs {
		rows = append(rows, Rate{
			Date:   date,
			Base:   base,
			Symbol: SymbolFromPair(base, pair),
			Rate:   quotes[pair],
		})
	}
	return rows
}
