package async

import (
	"context"
	"time"
)

// Job is one OCR text dump waiting to be scanned. Extend as needed later
// (priority, retry, trace).
type Job struct {
	Path        string
	Hint        string
	SubmittedAt time.Time
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
