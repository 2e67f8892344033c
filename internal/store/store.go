// Package store persists the catalog collections through a storage.KV.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/digitalhaute/internal/model"
	"github.com/Veraticus/digitalhaute/internal/storage"
)

// Storage keys for each collection.
const (
	ProductsKey = "@digitalhaute/products"
	VendorsKey  = "@digitalhaute/vendors"
	BudgetsKey  = "@digitalhaute/budgets"
	SettingsKey = "@digitalhaute/settings"
)

// ReadErrorFunc receives collection read failures, which are otherwise
// swallowed.
type ReadErrorFunc func(key string, err error)

// Option configures a Store.
type Option func(*config)

// WithReadErrorHandler replaces the default slog handler for read failures.
func WithReadErrorHandler(fn ReadErrorFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.onReadError = fn
		}
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(newID func() string) Option {
	return func(c *config) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// NewID returns a UUIDv7, which sorts by creation time.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func logReadError(key string, err error) {
	slog.Error("Failed to read collection", "key", key, "error", err)
}

// Vendors is the vendor collection.
type Vendors = Collection[model.Vendor, *model.Vendor]

// Budgets is the budget collection.
type Budgets = Collection[model.Budget, *model.Budget]

// Products is the product collection.
type Products struct {
	*Collection[model.Product, *model.Product]
}

// ByVendor returns the products bought from vendorID, in collection order.
func (p *Products) ByVendor(ctx context.Context, vendorID string) []model.Product {
	all := p.GetAll(ctx)
	out := make([]model.Product, 0, len(all))
	for _, product := range all {
		if product.VendorID == vendorID {
			out = append(out, product)
		}
	}
	return out
}

// Patch merges patch onto the product with id.
func (p *Products) Patch(ctx context.Context, id string, patch model.ProductPatch) (model.Product, bool, error) {
	return p.Update(ctx, id, func(product *model.Product) {
		patch.Apply(product)
	})
}

// Store groups the catalog collections over one KV.
type Store struct {
	kv       storage.KV
	Products *Products
	Vendors  *Vendors
	Budgets  *Budgets
	Settings *Settings
}

// New builds a Store over kv.
func New(kv storage.KV, opts ...Option) *Store {
	cfg := &config{
		now:         time.Now,
		newID:       NewID,
		onReadError: logReadError,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Store{
		kv:       kv,
		Products: &Products{newCollection[model.Product, *model.Product](kv, cfg, ProductsKey)},
		Vendors:  newCollection[model.Vendor, *model.Vendor](kv, cfg, VendorsKey),
		Budgets:  newCollection[model.Budget, *model.Budget](kv, cfg, BudgetsKey),
		Settings: &Settings{kv: kv, cfg: cfg},
	}
}

// Clear removes every collection and the settings document.
func (s *Store) Clear(ctx context.Context) error {
	s.Products.mu.Lock()
	defer s.Products.mu.Unlock()
	s.Vendors.mu.Lock()
	defer s.Vendors.mu.Unlock()
	s.Budgets.mu.Lock()
	defer s.Budgets.mu.Unlock()
	s.Settings.mu.Lock()
	defer s.Settings.mu.Unlock()

	keys := []string{ProductsKey, VendorsKey, BudgetsKey, SettingsKey}
	if err := s.kv.Remove(ctx, keys...); err != nil {
		return fmt.Errorf("failed to clear %s: %w", strings.Join(keys, ", "), err)
	}
	return nil
}
