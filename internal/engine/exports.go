package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Veraticus/digitalhaute/internal/common"
	"github.com/Veraticus/digitalhaute/internal/export"
	"github.com/Veraticus/digitalhaute/internal/model"
	"github.com/Veraticus/digitalhaute/internal/shopify"
)

// ErrShopifyNotConnected is returned when an export is attempted before a
// store is connected.
var ErrShopifyNotConnected = common.NewUserError("Connect your Shopify store in Settings first.", common.ErrNotConnected)

// SelectProducts returns the products with the given ids in collection
// order. No ids selects nothing; use ProductIDs to export everything.
func (e *Engine) SelectProducts(ctx context.Context, ids []string) []model.Product {
	if len(ids) == 0 {
		return nil
	}
	return export.Select(e.store.Products.GetAll(ctx), ids)
}

// ProductIDs returns the id of every product in collection order.
func (e *Engine) ProductIDs(ctx context.Context) []string {
	products := e.store.Products.GetAll(ctx)
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

// ExportCSV writes the Shopify product CSV for the selected products and
// returns the number of variant rows. An empty selection returns
// export.ErrNoProducts.
func (e *Engine) ExportCSV(ctx context.Context, w io.Writer, ids []string) (int, error) {
	products := e.SelectProducts(ctx, ids)
	n, err := export.Write(w, products, e.store.Settings.Get(ctx))
	if err != nil {
		return 0, err
	}
	e.logger.Info("Exported product CSV", "products", len(products), "rows", n)
	return n, nil
}

// ExportToSheets writes the variant rows of the selected products to the
// configured spreadsheet and returns its id.
func (e *Engine) ExportToSheets(ctx context.Context, ids []string) (string, int, error) {
	if e.sheets == nil {
		return "", 0, fmt.Errorf("%w: google sheets export", common.ErrMissingConfig)
	}
	products := e.SelectProducts(ctx, ids)
	if len(products) == 0 {
		return "", 0, export.ErrNoProducts
	}

	rows := export.BuildRows(products, e.store.Settings.Get(ctx))
	id, err := e.sheets.WriteRows(ctx, rows)
	if err != nil {
		return "", 0, fmt.Errorf("failed to export to google sheets: %w", err)
	}
	return id, len(rows), nil
}

// ExportToShopify pushes the selected products to the connected Shopify
// store. A disconnected store yields ErrShopifyNotConnected.
func (e *Engine) ExportToShopify(ctx context.Context, ids []string) (shopify.ExportResult, error) {
	if e.shopify == nil {
		return shopify.ExportResult{}, ErrShopifyNotConnected
	}

	status, err := e.shopify.Status(ctx)
	if err != nil {
		return shopify.ExportResult{}, err
	}
	if !status.Ready() {
		return shopify.ExportResult{}, ErrShopifyNotConnected
	}

	products := e.SelectProducts(ctx, ids)
	if len(products) == 0 {
		return shopify.ExportResult{}, export.ErrNoProducts
	}
	selected := make([]string, len(products))
	for i, p := range products {
		selected[i] = p.ID
	}

	result, err := e.shopify.Export(ctx, shopify.ExportRequest{
		ShopDomain: status.ShopDomain,
		ProductIDs: selected,
	})
	if err != nil {
		return result, err
	}
	e.logger.Info("Exported to Shopify", "shop", status.ShopDomain, "count", result.Count)
	return result, nil
}

// IsNothingToExport reports whether err means the selection was empty.
func IsNothingToExport(err error) bool {
	return errors.Is(err, export.ErrNoProducts)
}
