package engine

import (
	"context"
	"fmt"

	"github.com/Veraticus/digitalhaute/internal/common"
	"github.com/Veraticus/digitalhaute/internal/images"
	"github.com/Veraticus/digitalhaute/internal/model"
)

// AttachImage uploads file as the product's photo and stores the hosted URL.
// A previously hosted photo is removed after the new one is saved.
func (e *Engine) AttachImage(ctx context.Context, productID string, file any) (model.Product, error) {
	if e.images == nil {
		return model.Product{}, fmt.Errorf("%w: image hosting", common.ErrMissingConfig)
	}
	product, err := e.GetProduct(ctx, productID)
	if err != nil {
		return model.Product{}, err
	}

	img, err := e.images.Upload(ctx, file, product.ID)
	if err != nil {
		return model.Product{}, err
	}

	updated, err := e.UpdateProduct(ctx, product.ID, model.ProductPatch{ImageURI: &img.URL})
	if err != nil {
		return model.Product{}, err
	}

	if old, err := images.PublicIDFromURL(product.ImageURI); err == nil && old != img.PublicID {
		if err := e.images.Destroy(ctx, old); err != nil {
			e.logger.Warn("Failed to remove previous product image", "public_id", old, "error", err)
		}
	}
	return updated, nil
}
