package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"reciboscan/constants"
	"reciboscan/internal/common"
)

// datetimeLayout matches the pipeline's timezone-free wire format.
const datetimeLayout = "2006-01-02T15:04:05"

const schemaDDL = `
CREATE TABLE IF NOT EXISTS transactions (
	id              TEXT PRIMARY KEY,
	transaction_ref TEXT NOT NULL DEFAULT '',
	tx_datetime     TEXT,
	amount          TEXT,
	currency        TEXT NOT NULL DEFAULT '',
	recipe          TEXT NOT NULL,
	raw_text        TEXT NOT NULL,
	hint            TEXT NOT NULL DEFAULT '',
	created_at      TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_ref
	ON transactions(transaction_ref) WHERE transaction_ref <> '';
`

type sqliteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (and migrates) a sqlite-backed TransactionStore.
// Use ":memory:" as the path for an ephemeral store.
func NewSQLiteStore(ctx context.Context, path string, logger *slog.Logger) (TransactionStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "open sqlite")
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "migrate transactions table")
	}
	logger.Debug("store.sqlite.open", "path", path)
	return &sqliteStore{db: db, logger: logger}, nil
}

func (s *sqliteStore) Save(ctx context.Context, tx Transaction) (uuid.UUID, bool, error) {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	var dt, amount sql.NullString
	if tx.Datetime != nil {
		dt = sql.NullString{String: tx.Datetime.Format(datetimeLayout), Valid: true}
	}
	if tx.Amount != nil {
		amount = sql.NullString{String: tx.Amount.String(), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, transaction_ref, tx_datetime, amount, currency, recipe, raw_text, hint, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (transaction_ref) WHERE transaction_ref <> '' DO NOTHING`,
		tx.ID.String(), tx.TransactionRef, dt, amount, tx.Currency,
		string(tx.Recipe), tx.RawText, tx.Hint, tx.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("insert transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("insert transaction: %w", err)
	}
	if n == 0 {
		s.logger.Info("store.save.duplicate", "transaction_ref", tx.TransactionRef)
		return uuid.Nil, true, nil
	}
	s.logger.Info("store.save.ok", "id", tx.ID, "transaction_ref", tx.TransactionRef, "recipe", string(tx.Recipe))
	return tx.ID, false, nil
}

func (s *sqliteStore) GetByRef(ctx context.Context, ref string) (*Transaction, error) {
	if ref == "" {
		return nil, common.ErrInvalidInput
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, transaction_ref, tx_datetime, amount, currency, recipe, raw_text, hint, created_at
		FROM transactions WHERE transaction_ref = ?`, ref)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	return tx, err
}

func (s *sqliteStore) List(ctx context.Context, from, to *time.Time) ([]*Transaction, error) {
	q := `SELECT id, transaction_ref, tx_datetime, amount, currency, recipe, raw_text, hint, created_at
		FROM transactions WHERE 1=1`
	var args []any
	if from != nil {
		q += ` AND tx_datetime >= ?`
		args = append(args, from.Format(datetimeLayout))
	}
	if to != nil {
		q += ` AND tx_datetime <= ?`
		args = append(args, to.Format(datetimeLayout))
	}
	q += ` ORDER BY tx_datetime`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var result []*Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(r rowScanner) (*Transaction, error) {
	var (
		tx         Transaction
		idS        string
		dtS, amtS  sql.NullString
		recipeS    string
		createdAtS string
	)
	err := r.Scan(&idS, &tx.TransactionRef, &dtS, &amtS, &tx.Currency, &recipeS, &tx.RawText, &tx.Hint, &createdAtS)
	if err != nil {
		return nil, err
	}
	if tx.ID, err = uuid.Parse(idS); err != nil {
		return nil, fmt.Errorf("parse row id: %w", err)
	}
	if dtS.Valid {
		t, err := time.ParseInLocation(datetimeLayout, dtS.String, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse tx_datetime: %w", err)
		}
		tx.Datetime = &t
	}
	if amtS.Valid {
		d, err := decimal.NewFromString(amtS.String)
		if err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		tx.Amount = &d
	}
	tx.Recipe = constants.RecipeName(recipeS)
	if tx.CreatedAt, err = time.Parse(time.RFC3339, createdAtS); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &tx, nil
}
