package ocr

import (
	"context"
	"time"
)

// TextExtractor is the image-to-text collaborator boundary. The engine
// behind it is a black box that may fail or return empty text; callers must
// surface failures as "could not read image" and never hand a failed read
// to the recipes.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ExtractionResult, error)
}

type ExtractionResult struct {
	Text     string
	Method   string // "file-text" | "image-ocr"
	Duration time.Duration
}
