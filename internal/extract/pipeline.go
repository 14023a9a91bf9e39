package extract

import (
	"context"
	"log"
	"time"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
)

// Pipeline sequences text acquisition, both extractors, and the merge for a
// single uploaded file. Run never fails: every stage degrades to a safe
// default, so the returned record is always complete. Persisting it is the
// caller's concern and the only step that can fail the upload.
type Pipeline struct {
	extractor port.FieldExtractor // nil when no AI provider is configured
	now       func() time.Time
}

// NewPipeline creates a Pipeline. extractor may be nil; the pipeline then
// runs heuristics-only.
func NewPipeline(extractor port.FieldExtractor) *Pipeline {
	return &Pipeline{extractor: extractor, now: time.Now}
}

// NewPipelineWithClock creates a Pipeline with a fixed clock (for testing).
func NewPipelineWithClock(extractor port.FieldExtractor, now func() time.Time) *Pipeline {
	return &Pipeline{extractor: extractor, now: now}
}

// Run executes the upload-to-record pipeline and returns the merged invoice.
func (p *Pipeline) Run(ctx context.Context, file UploadedFile) domain.Invoice {
	fallback := NewFallbackInvoice(p.now(), file.OriginalName)

	text := AcquireText(file)
	heur := ExtractHeuristic(text)

	var ai *port.ExtractedFields
	if p.extractor != nil {
		fields, err := p.extractor.ExtractFields(ctx, text)
		if err != nil {
			log.Printf("extract.Pipeline: AI extraction failed for %s: %v", file.OriginalName, err)
		} else {
			ai = fields
		}
	}

	return Merge(fallback, heur, ai)
}
