package pg_test

import (
	"context"
	"os"
	"testing"
	"time"

	"fxrates-etl/internal/infrastructure/pg"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func withPostgres(t *testing.T) string {
	t.Helper()
	if os.Getenv("TESTCONTAINERS") == "" {
		t.Skip("set TESTCONTAINERS=1 to run containerized PG tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := postgres.RunContainer(ctx,
		postgres.WithDatabase("fxrates"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// the container may not accept connections right away
	var connErr error
	for i := 0; i < 30; i++ {
		var db *pg.DB
		if db, connErr = pg.Connect(ctx, dsn); connErr == nil {
			db.Close()
			break
		}
		select {
		case <-ctx.Done():
			t.Fatalf("postgres not ready: %v", ctx.Err())
		case <-time.After(500 * time.Millisecond):
		}
	}
	require.NoError(t, connErr)
	return dsn
}
