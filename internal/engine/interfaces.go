package engine

import (
	"context"

	"github.com/Veraticus/digitalhaute/internal/labelscan"
	"github.com/Veraticus/digitalhaute/internal/shopify"
)

// Scanner extracts label fields from a photo. It never fails; an empty
// Result means nothing could be read.
type Scanner interface {
	Scan(ctx context.Context, imageBase64 string) labelscan.Result
}

// ShopifyClient talks to the Shopify connection service.
type ShopifyClient interface {
	Status(ctx context.Context) (shopify.Status, error)
	Export(ctx context.Context, req shopify.ExportRequest) (shopify.ExportResult, error)
}
