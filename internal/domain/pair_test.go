package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSymbolFromPair(t *testing.T) {
	t.Parallel()
	cases := []struct {
		base, pair, want string
	}{
		{"EUR", "EURUSD", "USD"},
		{"EUR", "EURSEK", "SEK"},
		{"EUR", "EUREUR", "EUR"},
		{"USD", "USDEUR", "EUR"},
		{"EUR", "GBPUSD", "GBPUSD"},
	}
	for _, c := range cases {
		got := SymbolFromPair(c.base, c.pair)
		require.Equal(t, c.want, got, "SymbolFromPair(%q, %q)", c.base, c.pair)
	}
}

func TestSymbolFromPair_BasePlusSymbolIsPair(t *testing.T) {
	t.Parallel()
	for _, pair := range []string{"EURUSD", "EURJPY", "EURCHF", "EURXAU", "EUREUR"} {
		require.Equal(t, pair, "EUR"+SymbolFromPair("EUR", pair))
	}
}

func TestRatesFromQuotes(t *testing.T) {
	t.Parallel()
	rows := RatesFromQuotes("EUR", map[string]float64{"EURUSD": 1.1, "EURSEK": 11.2}, "2025-09-01")
	require.Equal(t, []Rate{
		{Date: "2025-09-01", Base: "EUR", Symbol: "SEK", Rate: 11.2},
		{Date: "2025-09-01", Base: "EUR", Symbol: "USD", Rate: 1.1},
	}, rows)
}

func TestRatesFromQuotes_Empty(t *testing.T) {
	t.Parallel()
	require.Empty(t, RatesFromQuotes("EUR", map[string]float64{}, "2025-09-01"))
	require.Empty(t, RatesFromQuotes("EUR", nil, "2025-09-01"))
}

func TestValidCurrency(t *testing.T) {
	t.Parallel()
	require.True(t, ValidCurrency("EUR"))
	require.False(t, ValidCurrency("eur"))
	require.False(t, ValidCurrency("EURO"))
	require.False(t, ValidCurrency(""))
}
