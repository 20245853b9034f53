package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"reciboscan/constants"
	"reciboscan/internal/common"
	"reciboscan/internal/ocr"
	"reciboscan/internal/pipeline"
	"reciboscan/internal/store"
)

// ProcessResult is the outcome of one file pass through the pipeline.
type ProcessResult struct {
	Output    pipeline.Output
	JSON      []byte
	Status    constants.ScanStatus
	StoredID  uuid.UUID // uuid.Nil when no store is configured or row was a duplicate
	Duplicate bool
}

// Processor coordinates text extraction, recipe scanning and persistence.
// The store is optional; with a nil store results are produced but not saved.
type Processor struct {
	logger    *slog.Logger
	extractor ocr.TextExtractor
	engine    *pipeline.Engine
	store     store.TransactionStore
}

func NewProcessor(logger *slog.Logger, extractor ocr.TextExtractor, engine *pipeline.Engine, st store.TransactionStore) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if extractor == nil {
		extractor = ocr.NewFileTextExtractor(logger)
	}
	if engine == nil {
		engine = pipeline.NewEngine(logger)
	}
	return &Processor{logger: logger, extractor: extractor, engine: engine, store: st}
}

// ProcessFile extracts text from path, scans it against the recipes and,
// when a store is configured, persists the recognized transaction. The hint
// is an optional caller annotation carried through to storage untouched.
func (p *Processor) ProcessFile(ctx context.Context, path string, hint string) (ProcessResult, error) {
	res, err := p.extractor.Extract(ctx, path)
	if err != nil {
		p.logger.Error("processor.extract.failed", "path", path, "err", err)
		return ProcessResult{}, fmt.Errorf("extract text: %w", err)
	}
	if res.Text == "" {
		p.logger.Warn("processor.extract.empty", "path", path)
		return ProcessResult{}, common.ErrUnreadable
	}
	p.logger.Debug("processor extract success",
		"path", path,
		"method", res.Method,
		"duration", res.Duration.String(),
		"bytes", len(res.Text),
	)

	out := p.engine.Scan(res.Text)
	result := ProcessResult{Output: out, Status: constants.ScanStatusUnrecognized}
	if out.Recognized() {
		result.Status = constants.ScanStatusRecognized
	}

	result.JSON, err = pipeline.MarshalOutput(out)
	if err != nil {
		return result, fmt.Errorf("marshal output: %w", err)
	}
	if err := pipeline.ValidateOutputJSON(result.JSON); err != nil {
		return result, fmt.Errorf("validate output: %w", err)
	}

	if p.store == nil || !out.Recognized() {
		return result, nil
	}

	tx := store.Transaction{
		TransactionRef: out.TransactionID,
		Datetime:       out.Datetime,
		Amount:         out.Amount,
		Currency:       out.Currency,
		Recipe:         out.RecipeName,
		RawText:        out.RawText,
		Hint:           hint,
	}
	id, dup, err := p.store.Save(ctx, tx)
	if err != nil {
		p.logger.Error("processor.save.failed", "path", path, "err", err)
		return result, fmt.Errorf("save transaction: %w", err)
	}
	result.StoredID = id
	result.Duplicate = dup
	if dup {
		result.Status = constants.ScanStatusDuplicate
		p.logger.Info("processor.duplicate", "path", path, "transaction_ref", out.TransactionID)
	}
	return result, nil
}
