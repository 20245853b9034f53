package pipeline

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"reciboscan/constants"
	"reciboscan/internal/recipes"
)

// Output is the engine's final answer, always produced: an input no recipe
// recognizes yields empty fields with the raw text preserved for manual
// entry and visual debugging.
type Output struct {
	Datetime      *time.Time
	Amount        *decimal.Decimal
	TransactionID string
	Currency      string
	RecipeName    constants.RecipeName
	RawText       string
}

// Recognized reports whether some recipe accepted and validated the text.
func (o Output) Recognized() bool { return o.RecipeName != "" }

// Engine runs the recipe cascade in fixed priority order, most specific
// first. Ordering substitutes for a scoring function, which keeps behavior
// deterministic and explainable per input. The engine holds no per-call
// state and is safe for concurrent use.
type Engine struct {
	logger   *slog.Logger
	currency string
	recipes  []recipes.Recipe
}

// NewEngine builds an engine over an explicit recipe list, or the default
// priority order [mobile-payment, store-receipt, generic-receipt] when none
// is given.
func NewEngine(logger *slog.Logger, rs ...recipes.Recipe) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if len(rs) == 0 {
		rs = []recipes.Recipe{
			recipes.NewMobilePayment(logger, nil),
			recipes.NewStoreReceipt(logger),
			recipes.NewGeneric(logger),
		}
	}
	return &Engine{logger: logger, currency: constants.DefaultCurrency, recipes: rs}
}

// SetCurrency overrides the fallback currency assigned when a recipe
// reports none. Empty codes are ignored.
func (e *Engine) SetCurrency(code string) {
	if code != "" {
		e.currency = code
	}
}

// Scan returns the first valid extraction in priority order. It never fails:
// a missing field is absent, not an error, and an unrecognized format is a
// terminal outcome rather than an exception.
func (e *Engine) Scan(text string) Output {
	for _, r := range e.recipes {
		if !r.CanHandle(text) {
			continue
		}
		res := r.Extract(text)
		if !r.IsValid(res) {
			// Routine fall-through to the next recipe, not a failure.
			e.logger.Debug("engine.recipe.rejected", "recipe", string(r.Name()))
			continue
		}
		currency := res.Currency
		if currency == "" {
			currency = e.currency
		}
		e.logger.Info("engine.scan.ok",
			"recipe", string(r.Name()),
			"transaction_id", res.TransactionID,
		)
		return Output{
			Datetime:      res.Datetime,
			Amount:        res.Amount,
			TransactionID: res.TransactionID,
			Currency:      currency,
			RecipeName:    r.Name(),
			RawText:       text,
		}
	}

	e.logger.Info("engine.scan.unrecognized", "text_bytes", len(text))
	return Output{RawText: text}
}
