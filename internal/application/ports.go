package application

import (
	"context"

	"fxrates-etl/internal/domain"
)

// RateFetcher retrieves one quote snapshot from the upstream API.
type RateFetcher interface {
	Fetch(ctx context.Context) (domain.Snapshot, error)
}

// RateStore is the persistent home of domain.Rate rows.
type RateStore interface {
	// Init creates the rates table when missing. It must be safe to call on every run.
	Init(ctx context.Context) error
	// InsertIgnore writes rows in one batch, silently skipping rows whose
	// (date, symbol) already exists.
	InsertIgnore(ctx context.Context, rows []domain.Rate) error
}
