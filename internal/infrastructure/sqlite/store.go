package sqlite

import (
	"context"
	"fmt"
	"slices"

	"fxrates-etl/internal/application"
	"fxrates-etl/internal/domain"
	"fxrates-etl/internal/infrastructure/logx"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const createTable = `
CREATE TABLE IF NOT EXISTS fx_rates (
    date   TEXT NOT NULL,
    base   TEXT NOT NULL,
    symbol TEXT NOT NULL,
    rate   REAL NOT NULL,
    PRIMARY KEY (date, symbol)
)`

// Store keeps rates in a local SQLite file. Every call opens its own
// connection and closes it before returning.
type Store struct {
	path string
	log  *zap.Logger
}

var _ application.RateStore = (*Store)(nil)

func NewStore(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, log: log}
}

func (s *Store) dsn() string {
	return "file:" + s.path + "?_busy_timeout=5000"
}

// logger prefers the run-scoped logger carried by ctx.
func (s *Store) logger(ctx context.Context) *zap.Logger {
	return logx.FromContext(ctx, s.log).With(zap.String("store", "sqlite"))
}

func (s *Store) withDB(ctx context.Context, fn func(db *sqlx.DB) error) error {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", s.dsn())
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", application.ErrStorage, s.path, err)
	}
	defer db.Close()
	return fn(db)
}

func (s *Store) Init(ctx context.Context) error {
	log := s.logger(ctx)
	return s.withDB(ctx, func(db *sqlx.DB) error {
		if _, err := db.ExecContext(ctx, createTable); err != nil {
			log.Error("sql.exec_failed", zap.String("operation", "Init"), zap.Error(err))
			return fmt.Errorf("%w: create table: %w", application.ErrStorage, err)
		}
		log.Info("db.setup_complete", zap.String("path", s.path))
		return nil
	})
}

// InsertIgnore writes rows in one transaction. Rows are split across
// statements of at most maxRowsPerStatement so a large quote set stays under
// SQLite's bound variable limit.
func (s *Store) InsertIgnore(ctx context.Context, rows []domain.Rate) error {
	if len(rows) == 0 {
		return nil
	}
	log := s.logger(ctx).With(zap.String("operation", "InsertIgnore"), zap.Int("rows", len(rows)))
	return s.withDB(ctx, func(db *sqlx.DB) error {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("%w: begin: %w", application.ErrStorage, err)
		}
		defer func() { _ = tx.Rollback() }()

		log.Debug("sql.exec_start")
		var affected int64
		for chunk := range slices.Chunk(rows, maxRowsPerStatement) {
			query, args, err := insertQuery(chunk)
			if err != nil {
				return fmt.Errorf("%w: build insert: %w", application.ErrStorage, err)
			}
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				log.Error("sql.exec_failed", zap.Error(err))
				return fmt.Errorf("%w: insert rates: %w", application.ErrStorage, err)
			}
			n, _ := res.RowsAffected()
			affected += n
		}
		if err := tx.Commit(); err != nil {
			log.Error("sql.exec_failed", zap.Error(err))
			return fmt.Errorf("%w: commit: %w", application.ErrStorage, err)
		}
		log.Debug("sql.exec_success", zap.Int64("rows_affected", affected))
		return nil
	})
}

// 4 bound variables per row; SQLite's default limit is 32766.
const maxRowsPerStatement = 500

func insertQuery(rows []domain.Rate) (string, []any, error) {
	b := sq.Insert("fx_rates").
		Options("OR IGNORE").
		Columns("date", "base", "symbol", "rate")
	for _, r := range rows {
		b = b.Values(r.Date, r.Base, r.Symbol, r.Rate)
	}
	return b.ToSql()
}
