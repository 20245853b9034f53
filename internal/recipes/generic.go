package recipes

import (
	"log/slog"
	"regexp"
	"strings"

	"reciboscan/constants"
	"reciboscan/internal/normalize"
)

// Generic amount keywords: the loosest detector vocabulary, which is why
// this recipe sits last in priority order.
var genericKeywords = []string{"monto", "total", "valor"}

var genericAmountPatterns = []*regexp.Regexp{
	// keyword, currency marker, Venezuelan-formatted number
	regexp.MustCompile(`(?i)(?:MONTO|TOTAL|VALOR)[^\n\d]{0,20}Bs\.?S?\.?\s*(\d{1,3}(?:\.\d{3})*,\d{2})`),
	// keyword, US-formatted number
	regexp.MustCompile(`(?i)(?:MONTO|TOTAL|VALOR)[^\n\d]{0,20}(\d{1,3}(?:,\d{3})*\.\d{2})`),
	// keyword, any numeral shape the normalizer can disambiguate
	regexp.MustCompile(`(?i)(?:MONTO|TOTAL|VALOR)[^\n\d]{0,20}([\d.,]+)`),
	// bare currency-marker number
	regexp.MustCompile(`(?i)\bBs\.?S?\.?\s*([\d.,]+)`),
}

var genericRefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:REF(?:ERENCIA)?|OPERACI[OÓ]N|TRANSACCI[OÓ]N)\D{0,10}?(\d{6,})`),
	regexp.MustCompile(`(?i)\bN(?:RO|UMERO|[O°º])?\.?\D{0,6}?(\d{6,})`),
}

// Generic is the fallback recipe for receipts that carry an amount keyword
// but match no store- or app-specific layout.
type Generic struct {
	logger *slog.Logger
}

func NewGeneric(logger *slog.Logger) *Generic {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generic{logger: logger}
}

func (g *Generic) Name() constants.RecipeName { return constants.RecipeGeneric }

func (g *Generic) CanHandle(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range genericKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Extract leaves Currency unset; the engine fills the configured fallback.
func (g *Generic) Extract(text string) Result {
	var res Result

	for _, re := range genericAmountPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		amount, err := normalize.ParseAmount(m[1])
		if err != nil {
			g.logger.Debug("generic.amount.unparseable", "raw", m[1], "err", err)
			break
		}
		res.Amount = &amount
		break
	}

	for _, re := range genericRefPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			res.TransactionID = m[1]
			break
		}
	}

	res.Datetime = normalize.ParseDateTimeLoose(text)
	return res
}

// IsValid needs only a datetime and an amount. Many small receipts never
// print a reference number, so it stays a nice-to-have here.
func (g *Generic) IsValid(r Result) bool {
	if r.TransactionID == "" {
		g.logger.Debug("generic.reference.missing")
	}
	return r.Datetime != nil && r.Amount != nil
}
