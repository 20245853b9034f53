package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// FileTextExtractor serves pre-OCR'd text dumps (.txt files written by an
// external OCR run). It stands in for the image pipeline wherever the text
// is already on disk, which is the only mode the scanner itself ships.
type FileTextExtractor struct {
	logger *slog.Logger
}

func NewFileTextExtractor(logger *slog.Logger) *FileTextExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileTextExtractor{logger: logger}
}

// Extract reads and normalizes a text dump. An empty file is not an error
// here; the caller decides whether empty text means "could not read image".
func (f *FileTextExtractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return ExtractionResult{}, err
	}
	start := time.Now()
	b, err := os.ReadFile(path)
	if err != nil {
		return ExtractionResult{}, fmt.Errorf("read text dump: %w", err)
	}
	res := ExtractionResult{
		Text:     Normalize(string(b)),
		Method:   "file-text",
		Duration: time.Since(start),
	}
	f.logger.Debug("ocr.filetext.ok", "path", path, "text_bytes", len(res.Text))
	return res, nil
}
