package pg

import (
	"context"
	"fmt"
	"slices"

	"fxrates-etl/internal/application"
	"fxrates-etl/internal/domain"
	"fxrates-etl/internal/infrastructure/logx"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const createTable = `
CREATE TABLE IF NOT EXISTS fx_rates (
    date   TEXT             NOT NULL,
    base   TEXT             NOT NULL,
    symbol TEXT             NOT NULL,
    rate   DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (date, symbol)
)`

// Store is the Postgres flavour of the rate table. Like the SQLite store it
// holds no connection between calls.
type Store struct {
	dsn string
	log *zap.Logger
}

var _ application.RateStore = (*Store)(nil)

func NewStore(dsn string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dsn: dsn, log: log}
}

// logger prefers the run-scoped logger carried by ctx.
func (s *Store) logger(ctx context.Context) *zap.Logger {
	return logx.FromContext(ctx, s.log).With(zap.String("store", "pg"))
}

func (s *Store) withDB(ctx context.Context, fn func(db *DB) error) error {
	db, err := Connect(ctx, s.dsn)
	if err != nil {
		return fmt.Errorf("%w: connect: %w", application.ErrStorage, err)
	}
	defer db.Close()
	return fn(db)
}

func (s *Store) Init(ctx context.Context) error {
	log := s.logger(ctx)
	return s.withDB(ctx, func(db *DB) error {
		if _, err := db.Pool.Exec(ctx, createTable); err != nil {
			log.Error("sql.exec_failed", zap.String("operation", "Init"), zap.Error(err))
			return fmt.Errorf("%w: create table: %w", application.ErrStorage, err)
		}
		log.Info("db.setup_complete")
		return nil
	})
}

// InsertIgnore writes rows in one transaction, at most maxRowsPerStatement
// rows per statement.
func (s *Store) InsertIgnore(ctx context.Context, rows []domain.Rate) error {
	if len(rows) == 0 {
		return nil
	}
	log := s.logger(ctx).With(zap.String("operation", "InsertIgnore"), zap.Int("rows", len(rows)))
	return s.withDB(ctx, func(db *DB) error {
		log.Debug("sql.exec_start")
		var affected int64
		err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
			for chunk := range slices.Chunk(rows, maxRowsPerStatement) {
				query, args, err := insertQuery(chunk)
				if err != nil {
					return fmt.Errorf("build insert: %w", err)
				}
				tag, err := tx.Exec(ctx, query, args...)
				if err != nil {
					return fmt.Errorf("insert rates: %w", err)
				}
				affected += tag.RowsAffected()
			}
			return nil
		})
		if err != nil {
			log.Error("sql.exec_failed", zap.Error(err))
			return fmt.Errorf("%w: %w", application.ErrStorage, err)
		}
		log.Debug("sql.exec_success", zap.Int64("rows_affected", affected))
		return nil
	})
}

// 4 parameters per row; the protocol allows 65535.
const maxRowsPerStatement = 1000

func insertQuery(rows []domain.Rate) (string, []any, error) {
	b := sq.Insert("fx_rates").
		PlaceholderFormat(sq.Dollar).
		Columns("date", "base", "symbol", "rate").
		Suffix("ON CONFLICT (date, symbol) DO NOTHING")
	for _, r := range rows {
		b = b.Values(r.Date, r.Base, r.Symbol, r.Rate)
	}
	return b.ToSql()
}
