package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	kv, err := NewSQLiteKV(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	require.NoError(t, kv.Migrate(context.Background()))
	return kv
}

func TestKV_Contract(t *testing.T) {
	backends := map[string]func(t *testing.T) KV{
		"memory": func(_ *testing.T) KV { return NewMemoryKV() },
		"sqlite": func(t *testing.T) KV { return createTestKV(t) },
	}

	for name, newKV := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := newKV(t)

			_, found, err := kv.Get(ctx, "@digitalhaute/products")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, kv.Set(ctx, "@digitalhaute/products", []byte(`[{"id":"a"}]`)))
			require.NoError(t, kv.Set(ctx, "@digitalhaute/vendors", []byte(`[]`)))

			value, found, err := kv.Get(ctx, "@digitalhaute/products")
			require.NoError(t, err)
			assert.True(t, found)
			assert.JSONEq(t, `[{"id":"a"}]`, string(value))

			require.NoError(t, kv.Set(ctx, "@digitalhaute/products", []byte(`[]`)))
			value, _, err = kv.Get(ctx, "@digitalhaute/products")
			require.NoError(t, err)
			assert.Equal(t, "[]", string(value))

			require.NoError(t, kv.Remove(ctx, "@digitalhaute/products", "@digitalhaute/vendors", "unknown"))
			_, found, err = kv.Get(ctx, "@digitalhaute/vendors")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, kv.Remove(ctx))
		})
	}
}

func TestKV_Validation(t *testing.T) {
	kv := NewMemoryKV()

	//nolint:staticcheck // exercising nil context handling
	_, _, err := kv.Get(nil, "key")
	assert.ErrorIs(t, err, ErrNilContext)

	err = kv.Set(context.Background(), "  ", []byte("x"))
	assert.ErrorIs(t, err, ErrEmptyString)

	_, err = NewSQLiteKV("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	value := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", value))
	value[0] = 'z'

	got, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteKV_MigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := createTestKV(t)

	require.NoError(t, kv.Set(ctx, "@digitalhaute/settings", []byte(`{}`)))
	require.NoError(t, kv.Migrate(ctx))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"@digitalhaute/settings"}, keys)
}

func TestSQLiteKV_Persists(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "haute.db")

	first, err := NewSQLiteKV(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Migrate(ctx))
	require.NoError(t, first.Set(ctx, "k", []byte("v")))
	require.NoError(t, first.Close())

	second, err := NewSQLiteKV(dbPath)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()
	require.NoError(t, second.Migrate(ctx))

	value, found, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", string(value))
	assert.Equal(t, dbPath, second.Path())
}
