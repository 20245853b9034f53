package constants

// ScanStatus is the canonical outcome for a processed text dump.
type ScanStatus string

const (
	ScanStatusRecognized   ScanStatus = "RECOGNIZED"   // a recipe accepted and validated
	ScanStatusUnrecognized ScanStatus = "UNRECOGNIZED" // no recipe accepted; raw text kept for manual entry
	ScanStatusDuplicate    ScanStatus = "DUPLICATE"    // reference number already persisted
)
