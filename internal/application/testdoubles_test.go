package application

import (
	"context"
	"errors"
	"time"

	"fxrates-etl/internal/domain"
	"fxrates-etl/internal/infrastructure/logx"
)

var (
	ErrRepo = errors.New("repo error")
)

type fakeRateStore struct {
	rows      map[string]domain.Rate
	initCalls int
	batches   int
	initErr   error
	insertErr error
}

func (f *fakeRateStore) Init(context.Context) error {
	f.initCalls++
	if f.initErr != nil {
		return f.initErr
	}
	if f.rows == nil {
		f.rows = map[string]domain.Rate{}
	}
	return nil
}

func (f *fakeRateStore) InsertIgnore(_ context.Context, rows []domain.Rate) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.rows == nil {
		f.rows = map[string]domain.Rate{}
	}
	f.batches++
	for _, r := range rows {
		key := r.Date + "|" + r.Symbol
		if _, ok := f.rows[key]; ok {
			continue
		}
		f.rows[key] = r
	}
	return nil
}

type fakeFetcher struct {
	out   domain.Snapshot
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(context.Context) (domain.Snapshot, error) {
	f.calls++
	if f.err != nil {
		return domain.Snapshot{}, f.err
	}
	return f.out, nil
}

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type fixedIDGen string

func (g fixedIDGen) NewID() string { return string(g) }

type fakeRecorder struct {
	reports []RunReport
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, r RunReport) error {
	f.reports = append(f.reports, r)
	return f.err
}

// loggingFetcher logs through whatever logger the caller put on ctx.
type loggingFetcher struct{ fakeFetcher }

func (f *loggingFetcher) Fetch(ctx context.Context) (domain.Snapshot, error) {
	logx.FromContext(ctx, nil).Info("provider.fetch_success")
	return f.fakeFetcher.Fetch(ctx)
}
