// Package engine implements the catalog workflows: products, vendors,
// budgets, settings and exports. Every mutation that can move spend is
// followed by a budget recompute over the full product collection.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/digitalhaute/internal/budget"
	"github.com/Veraticus/digitalhaute/internal/images"
	"github.com/Veraticus/digitalhaute/internal/model"
	"github.com/Veraticus/digitalhaute/internal/sheets"
	"github.com/Veraticus/digitalhaute/internal/store"
)

// Engine orchestrates the catalog workflows over a Store.
type Engine struct {
	store   *store.Store
	scanner Scanner
	shopify ShopifyClient
	sheets  sheets.RowWriter
	images  images.Host
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithScanner enables label scanning.
func WithScanner(s Scanner) Option {
	return func(e *Engine) { e.scanner = s }
}

// WithShopify enables Shopify exports.
func WithShopify(c ShopifyClient) Option {
	return func(e *Engine) { e.shopify = c }
}

// WithSheets enables Google Sheets exports.
func WithSheets(w sheets.RowWriter) Option {
	return func(e *Engine) { e.sheets = w }
}

// WithImages enables product image hosting.
func WithImages(h images.Host) Option {
	return func(e *Engine) { e.images = h }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over st.
func New(st *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  st,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store exposes the underlying store for read-only views.
func (e *Engine) Store() *store.Store {
	return e.store
}

// RecomputeSpend re-derives every budget's spend from the current products
// and persists the budgets.
func (e *Engine) RecomputeSpend(ctx context.Context) error {
	products := e.store.Products.GetAll(ctx)
	err := e.store.Budgets.Modify(ctx, func(budgets []model.Budget) ([]model.Budget, error) {
		return budget.Recompute(products, budgets), nil
	})
	if err != nil {
		return fmt.Errorf("failed to recompute budget spend: %w", err)
	}
	return nil
}

// Dashboard returns the headline catalog figures.
func (e *Engine) Dashboard(ctx context.Context) budget.Stats {
	return budget.ComputeStats(
		e.store.Products.GetAll(ctx),
		e.store.Vendors.GetAll(ctx),
		e.store.Budgets.GetAll(ctx),
		e.now(),
	)
}

// Clear removes all catalog data and settings.
func (e *Engine) Clear(ctx context.Context) error {
	if err := e.store.Clear(ctx); err != nil {
		return err
	}
	e.logger.Info("Cleared all catalog data")
	return nil
}
