// Package testutil provides catalog fixtures for tests. It builds isolated
// stores with deterministic ids and clocks, and fluent product builders.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/digitalhaute/internal/model"
	"github.com/Veraticus/digitalhaute/internal/storage"
	"github.com/Veraticus/digitalhaute/internal/store"
)

// Epoch is the first instant handed out by the test clock.
var Epoch = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

// TestStore is a store over an isolated KV with a deterministic clock and
// sequential ids ("id-1", "id-2", ...).
type TestStore struct {
	*store.Store
	KV    storage.KV
	Clock *Clock
	t     *testing.T
}

// Clock is a manually advanced clock. Each reading advances it one second.
type Clock struct {
	now time.Time
	mu  sync.Mutex
}

// Now advances the clock by a second and returns it.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type sequence struct {
	n  int
	mu sync.Mutex
}

func (s *sequence) next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

// SetupTestStore creates a store over a fresh in-memory KV.
func SetupTestStore(t *testing.T, opts ...store.Option) *TestStore {
	t.Helper()
	return newTestStore(t, storage.NewMemoryKV(), opts)
}

// SetupSQLiteStore creates a store over a migrated SQLite file in a temp dir.
func SetupSQLiteStore(t *testing.T, opts ...store.Option) *TestStore {
	t.Helper()

	kv, err := storage.NewSQLiteKV(filepath.Join(t.TempDir(), "haute.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = kv.Close()
	})

	if err := kv.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return newTestStore(t, kv, opts)
}

func newTestStore(t *testing.T, kv storage.KV, opts []store.Option) *TestStore {
	clock := &Clock{now: Epoch}
	ids := &sequence{}

	all := append([]store.Option{
		store.WithClock(clock.Now),
		store.WithIDGenerator(ids.next),
		store.WithReadErrorHandler(func(key string, err error) {
			t.Logf("read error on %s: %v", key, err)
		}),
	}, opts...)

	return &TestStore{
		Store: store.New(kv, all...),
		KV:    kv,
		Clock: clock,
		t:     t,
	}
}

// MustCreateVendor persists v or fails the test.
func (s *TestStore) MustCreateVendor(v model.Vendor) model.Vendor {
	s.t.Helper()
	created, err := s.Vendors.Create(context.Background(), v)
	if err != nil {
		s.t.Fatalf("failed to seed vendor %q: %v", v.Name, err)
	}
	return created
}

// MustCreateProduct persists p or fails the test.
func (s *TestStore) MustCreateProduct(p model.Product) model.Product {
	s.t.Helper()
	created, err := s.Products.Create(context.Background(), p)
	if err != nil {
		s.t.Fatalf("failed to seed product %q: %v", p.Name, err)
	}
	return created
}

// MustCreateBudget persists b or fails the test.
func (s *TestStore) MustCreateBudget(b model.Budget) model.Budget {
	s.t.Helper()
	created, err := s.Budgets.Create(context.Background(), b)
	if err != nil {
		s.t.Fatalf("failed to seed budget for %q: %v", b.Season, err)
	}
	return created
}
