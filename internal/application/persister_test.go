package application

import (
	"context"
	"testing"

	"fxrates-etl/internal/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func Test_Save_InsertsOneRowPerPair(t *testing.T) {
	t.Parallel()
	store := &fakeRateStore{}
	p := NewRatePersister(store, nil)

	n, err := p.Save(context.Background(), "EUR", map[string]float64{"EURUSD": 1.1, "EURSEK": 11.2}, "2025-09-01")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, store.rows, 2)
	require.Equal(t, domain.Rate{Date: "2025-09-01", Base: "EUR", Symbol: "USD", Rate: 1.1}, store.rows["2025-09-01|USD"])
	require.Equal(t, domain.Rate{Date: "2025-09-01", Base: "EUR", Symbol: "SEK", Rate: 11.2}, store.rows["2025-09-01|SEK"])
}

func Test_Save_Twice_IgnoresDuplicates(t *testing.T) {
	t.Parallel()
	store := &fakeRateStore{}
	p := NewRatePersister(store, nil)
	quotes := map[string]float64{"EURUSD": 1.1, "EURSEK": 11.2}

	n1, err := p.Save(context.Background(), "EUR", quotes, "2025-09-01")
	require.NoError(t, err)
	n2, err := p.Save(context.Background(), "EUR", quotes, "2025-09-01")
	require.NoError(t, err)

	// attempted counts are reported even when every row was a duplicate
	require.Equal(t, 2, n1)
	require.Equal(t, 2, n2)
	require.Len(t, store.rows, 2)
}

func Test_Save_DoesNotOverwrite(t *testing.T) {
	t.Parallel()
	store := &fakeRateStore{}
	p := NewRatePersister(store, nil)

	_, err := p.Save(context.Background(), "EUR", map[string]float64{"EURUSD": 1.1}, "2025-09-01")
	require.NoError(t, err)
	_, err = p.Save(context.Background(), "EUR", map[string]float64{"EURUSD": 9.9}, "2025-09-01")
	require.NoError(t, err)

	require.InDelta(t, 1.1, store.rows["2025-09-01|USD"].Rate, 1e-9)
}

func Test_Save_EmptyQuotes(t *testing.T) {
	t.Parallel()
	store := &fakeRateStore{}
	core, logs := observer.New(zap.InfoLevel)
	p := NewRatePersister(store, zap.New(core))

	n, err := p.Save(context.Background(), "EUR", map[string]float64{}, "2025-09-01")
	require.NoError(t, err)
	require.Zero(t, n)
	require.Zero(t, store.batches)
	require.Empty(t, store.rows)
	require.Equal(t, 1, logs.FilterMessage("rates.inserted").Len())
}

func Test_Save_StoreError(t *testing.T) {
	t.Parallel()
	store := &fakeRateStore{insertErr: ErrStorage}
	p := NewRatePersister(store, nil)

	_, err := p.Save(context.Background(), "EUR", map[string]float64{"EURUSD": 1.1}, "2025-09-01")
	require.ErrorIs(t, err, ErrStorage)
}

func Test_Save_LogsAttemptedCount(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.InfoLevel)
	p := NewRatePersister(&fakeRateStore{}, zap.New(core))

	_, err := p.Save(context.Background(), "EUR", map[string]float64{"EURUSD": 1.1, "EURSEK": 11.2}, "2025-09-01")
	require.NoError(t, err)

	entries := logs.FilterMessage("rates.inserted").All()
	require.Len(t, entries, 1)
	require.Equal(t, int64(2), entries[0].ContextMap()["count"])
	require.Equal(t, "2025-09-01", entries[0].ContextMap()["date"])
}
