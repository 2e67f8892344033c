package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/digitalhaute/internal/model"
	"github.com/Veraticus/digitalhaute/internal/storage"
)

// entity is satisfied by pointers to the model types, which all embed
// model.Record.
type entity[T any] interface {
	*T
	Meta() *model.Record
}

// Collection persists one entity type as a single JSON array under one key.
// Every mutation rewrites the whole array. Mutations are serialized per
// collection.
type Collection[T any, P entity[T]] struct {
	kv  storage.KV
	cfg *config
	key string
	mu  sync.Mutex
}

func newCollection[T any, P entity[T]](kv storage.KV, cfg *config, key string) *Collection[T, P] {
	return &Collection[T, P]{kv: kv, cfg: cfg, key: key}
}

// Key returns the storage key the collection lives under.
func (c *Collection[T, P]) Key() string {
	return c.key
}

// GetAll returns every record, newest first. An unreadable collection is
// reported to the read error handler and returned as empty.
func (c *Collection[T, P]) GetAll(ctx context.Context) []T {
	items, err := c.load(ctx)
	if err != nil {
		c.cfg.onReadError(c.key, err)
		return []T{}
	}
	return items
}

// GetByID returns the record with id.
func (c *Collection[T, P]) GetByID(ctx context.Context, id string) (T, bool) {
	for _, item := range c.GetAll(ctx) {
		if P(&item).Meta().ID == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Create assigns an id and timestamps to item, prepends it and persists the
// collection. Any id or timestamps already on item are replaced.
func (c *Collection[T, P]) Create(ctx context.Context, item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stamp := model.FormatTimestamp(c.cfg.now())
	meta := P(&item).Meta()
	meta.ID = c.cfg.newID()
	meta.CreatedAt = stamp
	meta.UpdatedAt = stamp

	items := c.GetAll(ctx)
	next := make([]T, 0, len(items)+1)
	next = append(next, item)
	next = append(next, items...)

	if err := c.save(ctx, next); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Update applies mutate to the record with id, re-stamps UpdatedAt and
// persists. It reports false without writing when no record has that id.
// The id and creation time cannot be changed by mutate.
func (c *Collection[T, P]) Update(ctx context.Context, id string, mutate func(P)) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	items := c.GetAll(ctx)
	for i := range items {
		meta := P(&items[i]).Meta()
		if meta.ID != id {
			continue
		}

		original := *meta
		mutate(P(&items[i]))
		meta = P(&items[i]).Meta()
		meta.ID = original.ID
		meta.CreatedAt = original.CreatedAt
		meta.UpdatedAt = model.FormatTimestamp(c.cfg.now())

		if err := c.save(ctx, items); err != nil {
			return zero, true, err
		}
		return items[i], true, nil
	}
	return zero, false, nil
}

// Delete removes the record with id. Nothing is written when no record has
// that id.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.GetAll(ctx)
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if P(&item).Meta().ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}

	if err := c.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// Modify replaces the whole collection with the result of fn while holding
// the collection lock. Returning an error from fn aborts without writing.
func (c *Collection[T, P]) Modify(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fn(c.GetAll(ctx))
	if err != nil {
		return err
	}
	return c.save(ctx, next)
}

func (c *Collection[T, P]) load(ctx context.Context) ([]T, error) {
	data, found, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if !found || len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T, P]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.kv.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}

// config is shared by every collection of one Store.
type config struct {
	now         func() time.Time
	newID       func() string
	onReadError ReadErrorFunc
}
