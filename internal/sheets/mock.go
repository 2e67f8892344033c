package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/digitalhaute/internal/export"
)

// MockWriter is a RowWriter that records its calls.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, rows []export.Row) (string, error)
	WriteCalls     [][]export.Row
	WriteCallCount int
	mu             sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{WriteCalls: make([][]export.Row, 0)}
}

// WriteRows implements RowWriter.
func (m *MockWriter) WriteRows(ctx context.Context, rows []export.Row) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.WriteCalls = append(m.WriteCalls, rows)

	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, rows)
	}
	return "mock-spreadsheet", nil
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() [][]export.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([][]export.Row, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}
