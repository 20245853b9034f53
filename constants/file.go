package constants

import "strings"

// AllowedExtensions holds the default allowed file extensions for OCR text
// dump ingestion. The OCR engine itself runs upstream; only its text output
// lands here.
var AllowedExtensions = map[string]struct{}{
	"txt": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
