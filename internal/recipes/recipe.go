package recipes

import (
	"time"

	"github.com/shopspring/decimal"

	"reciboscan/constants"
)

// Result is the extraction output of a single recipe attempt. Nil and empty
// fields mean "absent": a recipe reports what it found and nothing more.
type Result struct {
	Datetime      *time.Time
	Amount        *decimal.Decimal
	TransactionID string
	Currency      string
}

// Recipe is a self-contained strategy for detecting and extracting
// transaction fields from one receipt family's text layout. Implementations
// are stateless, constructed once, and safe for concurrent reuse.
type Recipe interface {
	Name() constants.RecipeName

	// CanHandle is a cheap keyword/marker pre-check. It runs on every input
	// until some recipe accepts, so it must stay side-effect-free and fast.
	CanHandle(text string) bool

	// Extract is only invoked after CanHandle accepts. It may still produce
	// an incomplete result; IsValid decides whether that counts as success.
	Extract(text string) Result

	// IsValid is the recipe's own completeness rule.
	IsValid(r Result) bool
}
