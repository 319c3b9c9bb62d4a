package provider

import (
	"context"
	"maps"

	"fxrates-etl/internal/application"
	"fxrates-etl/internal/domain"
)

// Ensure Fake implements application.RateFetcher.
var _ application.RateFetcher = (*Fake)(nil)

// Fake returns a fixed snapshot without any network access.
type Fake struct {
	source string
	quotes map[string]float64
}

func NewFake(source string, quotes map[string]float64) *Fake {
	if quotes == nil {
		quotes = map[string]float64{
			source + "USD": 1.1,
			source + "GBP": 0.85,
			source + "SEK": 11.2,
		}
	}
	return &Fake{source: source, quotes: quotes}
}

func (f *Fake) Fetch(context.Context) (domain.Snapshot, error) {
	return domain.Snapshot{Source: f.source, Quotes: maps.Clone(f.quotes)}, nil
}
