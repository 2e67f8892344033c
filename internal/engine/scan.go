package engine

import (
	"context"

	"github.com/Veraticus/digitalhaute/internal/labelscan"
	"github.com/Veraticus/digitalhaute/internal/model"
)

// ScanLabel reads a label photo. Without a configured scanner, or when the
// model cannot read the label, it returns an empty Result.
func (e *Engine) ScanLabel(ctx context.Context, imageBase64 string) labelscan.Result {
	if e.scanner == nil {
		e.logger.Warn("Label scanning is not configured")
		return labelscan.Result{}
	}
	return e.scanner.Scan(ctx, imageBase64)
}

// Catalog returns the values scan results are matched against.
func (e *Engine) Catalog(ctx context.Context) labelscan.Catalog {
	return labelscan.Catalog{
		Categories: model.Categories,
		Seasons:    model.GenerateSeasons(e.now()),
		Vendors:    e.store.Vendors.GetAll(ctx),
	}
}

// PrefillDraft scans a label and merges what it read into draft.
func (e *Engine) PrefillDraft(ctx context.Context, imageBase64 string, draft labelscan.Draft) (labelscan.Draft, labelscan.Result) {
	result := e.ScanLabel(ctx, imageBase64)
	if result.IsEmpty() {
		return draft, result
	}
	return labelscan.Apply(result, draft, e.Catalog(ctx)), result
}
