package application

import (
	"context"

	"fxrates-etl/internal/domain"

	"go.uber.org/zap"
)

// RatePersister turns a quote set into rows and hands them to the store.
type RatePersister struct {
	store RateStore
	log   *zap.Logger
}

func NewRatePersister(store RateStore, log *zap.Logger) *RatePersister {
	if log == nil {
		log = zap.NewNop()
	}
	return &RatePersister{store: store, log: log}
}

// Save inserts one row per quote and returns the number of rows attempted.
// Rows dropped as duplicates are still counted.
func (p *RatePersister) Save(ctx context.Context, base string, quotes map[string]float64, date string) (int, error) {
	rows := domain.RatesFromQuotes(base, quotes, date)
	if len(rows) > 0 {
		if err := p.store.InsertIgnore(ctx, rows); err != nil {
			return 0, err
		}
	}
	p.log.Info("rates.inserted", zap.Int("count", len(rows)), zap.String("date", date))
	return len(rows), nil
}
