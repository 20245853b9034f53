package recipes

import (
	"log/slog"
	"regexp"
	"strings"

	"reciboscan/constants"
	"reciboscan/internal/normalize"
)

// Store-identity markers: the tax-authority header printed on fiscal
// receipts plus the retail chains whose ticket layouts this recipe knows.
var storeMarkers = []string{
	"SENIAT",
	"FARMATODO",
	"EXCELSIOR GAMA",
	"CENTRAL MADEIRENSE",
}

// Amount patterns, most specific first. The captured numeral goes through
// normalize.ParseAmount, which resolves the separator convention.
var storeAmountPatterns = []*regexp.Regexp{
	// amount keyword, currency marker, Venezuelan-formatted number
	regexp.MustCompile(`(?i)(?:TOTAL|MONTO|IMPORTE)[^\n\d]{0,20}Bs\.?S?\.?\s*(\d{1,3}(?:\.\d{3})*,\d{2})`),
	// thermal printers that break the label and the number across two lines
	regexp.MustCompile(`(?i)(?:TOTAL|MONTO|IMPORTE)[^\S\n]*\n\s*Bs\.?S?\.?\s*([\d.,]+)`),
	// amount keyword, US-formatted number
	regexp.MustCompile(`(?i)(?:TOTAL|MONTO|IMPORTE)[^\n\d]{0,20}(\d{1,3}(?:,\d{3})*\.\d{2})`),
	// bare currency-marker number, Venezuelan format
	regexp.MustCompile(`(?i)\bBs\.?S?\.?\s*(\d{1,3}(?:\.\d{3})*,\d{2})`),
	// bare currency-marker number, US format
	regexp.MustCompile(`(?i)\bBs\.?S?\.?\s*(\d{1,3}(?:,\d{3})*\.\d{2})`),
}

// Reference patterns, most specific label first. Digit minimums weed out
// line totals and cashier codes that share the labels.
var storeRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)FACTURA\D{0,10}?(\d{5,})`),
	regexp.MustCompile(`(?i)(?:TICKET|COMPROBANTE)\D{0,10}?(\d{6,})`),
	regexp.MustCompile(`(?i)\bN(?:RO|UMERO|[O°º])?\.?\D{0,6}?(\d{6,})`),
	regexp.MustCompile(`(?i)(?:REF(?:ERENCIA)?|OPERACI[OÓ]N|TRANSACCI[OÓ]N|VOUCHER)\D{0,10}?(\d{6,})`),
	regexp.MustCompile(`(?i)LOTE\D{0,10}?(\d{4,})`),
}

// StoreReceipt extracts fiscal tickets from known retail chains. It sits
// between the mobile-payment recipe and the generic fallback: its markers
// are store-specific and would otherwise be mis-claimed by the generic one.
type StoreReceipt struct {
	logger *slog.Logger
}

func NewStoreReceipt(logger *slog.Logger) *StoreReceipt {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreReceipt{logger: logger}
}

func (s *StoreReceipt) Name() constants.RecipeName { return constants.RecipeStoreReceipt }

func (s *StoreReceipt) CanHandle(text string) bool {
	upper := strings.ToUpper(text)
	for _, marker := range storeMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// Extract leaves Currency unset; the engine fills the configured fallback.
func (s *StoreReceipt) Extract(text string) Result {
	var res Result

	for _, re := range storeAmountPatterns {
		g := re.FindStringSubmatch(text)
		if g == nil {
			continue
		}
		amount, err := normalize.ParseAmount(g[1])
		if err != nil {
			s.logger.Debug("storereceipt.amount.unparseable", "raw", g[1], "err", err)
			break
		}
		res.Amount = &amount
		break
	}

	for _, re := range storeRefPatterns {
		if g := re.FindStringSubmatch(text); g != nil {
			// Kept digits-as-text: fiscal invoice numbers are zero-padded
			// on the ticket and must round-trip that way.
			res.TransactionID = g[1]
			break
		}
	}

	res.Datetime = normalize.ParseDateTime(text)
	return res
}

// IsValid requires all three fields: a store receipt without a reference
// number is unusable for dedup, and the pipeline falls through to the
// generic recipe instead.
func (s *StoreReceipt) IsValid(r Result) bool {
	return r.Datetime != nil && r.Amount != nil && r.TransactionID != ""
}
