package recipes

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"reciboscan/constants"
	"reciboscan/internal/normalize"
)

// Surcharge multipliers applied to pago móvil amounts by payer RIF class.
// When the RIF class cannot be detected the personal rate applies; that is a
// documented business assumption, not a detected fact.
var (
	businessSurcharge = decimal.RequireFromString("1.015")
	personalSurcharge = decimal.RequireFromString("1.003")
)

var (
	reBsAmount   = regexp.MustCompile(`(?i)\bBs\.?S?\.?\s*([\d.,]+)`)
	reBusinessID = regexp.MustCompile(`(?i)\bJ-?\d{8,9}\b`)
	rePersonalID = regexp.MustCompile(`(?i)\bV-?\d{7,9}\b`)
	reReference  = regexp.MustCompile(`(?i)(?:referencia|operaci[oó]n)\D{0,20}?(\d+)`)
	reSimpleDate = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{2,4})(?:[\s,]+(\d{1,2}):(\d{2}))?`)
)

// MobilePayment extracts pago móvil confirmation screenshots. It runs first
// in the cascade: its positive signal is the most distinctive and must not
// be shadowed by the looser receipt recipes.
type MobilePayment struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewMobilePayment builds the recipe. now is injectable so the documented
// "use the current moment" date fallback stays deterministic in tests; nil
// means time.Now.
func NewMobilePayment(logger *slog.Logger, now func() time.Time) *MobilePayment {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &MobilePayment{logger: logger, now: now}
}

func (m *MobilePayment) Name() constants.RecipeName { return constants.RecipeMobilePayment }

// CanHandle keys on the screenshot's action-bar labels. Screenshots cropped
// past the action bar still carry the reference label next to a Bs amount,
// which serves as the looser secondary signal.
func (m *MobilePayment) CanHandle(text string) bool {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "descargar") && strings.Contains(lower, "compartir") {
		return true
	}
	return reReference.MatchString(text) && reBsAmount.MatchString(text)
}

func (m *MobilePayment) Extract(text string) Result {
	res := Result{Currency: constants.DefaultCurrency}

	if g := reBsAmount.FindStringSubmatch(text); g != nil {
		amount, err := normalize.ParseAmount(g[1])
		if err != nil {
			m.logger.Debug("mobilepayment.amount.unparseable", "raw", g[1], "err", err)
		} else {
			amount = amount.Mul(m.surcharge(text))
			res.Amount = &amount
		}
	}

	if g := reReference.FindStringSubmatch(text); g != nil {
		// The same reference shows up zero-padded or not depending on how
		// the screenshot was cropped; strip leading zeros so dedup keys
		// agree either way. String surgery, not integer parsing: OCR can
		// glue digit runs past any integer width.
		ref := strings.TrimLeft(g[1], "0")
		if ref == "" {
			ref = "0"
		}
		res.TransactionID = ref
	}

	if g := reSimpleDate.FindStringSubmatch(text); g != nil {
		res.Datetime = normalize.FromParts(g[1], g[2], g[3], g[4], g[5], "", "")
	}
	if res.Datetime == nil {
		// Capture time is a reasonable proxy when OCR cannot read the
		// on-screen date. This is the only recipe allowed to synthesize one.
		now := m.now()
		res.Datetime = &now
	}

	return res
}

// surcharge picks the uplift by payer RIF class. Business IDs take
// precedence when both somehow match.
func (m *MobilePayment) surcharge(text string) decimal.Decimal {
	switch {
	case reBusinessID.MatchString(text):
		return businessSurcharge
	case rePersonalID.MatchString(text):
		return personalSurcharge
	default:
		return personalSurcharge
	}
}

// IsValid is the strictest of the three recipes: mobile payments are
// deduplicated by reference downstream, and an unidentified record is worse
// than no record at all.
func (m *MobilePayment) IsValid(r Result) bool {
	return r.Datetime != nil && r.Amount != nil && r.TransactionID != ""
}
