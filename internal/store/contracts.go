package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"reciboscan/constants"
)

// Transaction is the persisted form of a recognized scan.
type Transaction struct {
	ID             uuid.UUID
	TransactionRef string // "" when the recipe found none; dedup applies only when set
	Datetime       *time.Time
	Amount         *decimal.Decimal
	Currency       string
	Recipe         constants.RecipeName
	RawText        string
	Hint           string // operator-supplied free-text annotation
	CreatedAt      time.Time
}

// TransactionStore persists scans keyed by their reference number. Saving a
// reference that already exists is reported as a duplicate, not an error:
// the pipeline never invents references, which is what makes this dedup
// sound.
type TransactionStore interface {
	// Save inserts the transaction and returns its row ID, or reports that
	// the reference was already persisted.
	Save(ctx context.Context, tx Transaction) (uuid.UUID, bool, error)
	GetByRef(ctx context.Context, ref string) (*Transaction, error)
	List(ctx context.Context, from, to *time.Time) ([]*Transaction, error)
	Close() error
}
