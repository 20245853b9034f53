package constants

// DefaultCurrency is the local currency code a recipe falls back to when
// the receipt text does not state one explicitly.
const DefaultCurrency = "VES"
