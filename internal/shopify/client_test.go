package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/digitalhaute/internal/common"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL)
	require.NoError(t, err)
	client.retry.InitialDelay = time.Millisecond
	client.retry.MaxDelay = time.Millisecond
	return client
}

func TestClient_Status(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/shopify/status", r.URL.Path)
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"connected":true,"shopDomain":"haute.myshopify.com"}`))
	})

	status, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.Ready())
	assert.Equal(t, "haute.myshopify.com", status.ShopDomain)
	assert.Equal(t, int32(2), calls.Load(), "server errors are retried")
}

func TestClient_StatusClientError(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Status(context.Background())
	assert.ErrorIs(t, err, common.ErrUpstream)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Export(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products/export-to-shopify", r.URL.Path)

		var req ExportRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "haute.myshopify.com", req.ShopDomain)

		_ = json.NewEncoder(w).Encode(ExportResult{Success: true, Count: len(req.ProductIDs)})
	})

	result, err := client.Export(context.Background(), ExportRequest{
		ShopDomain: "haute.myshopify.com",
		ProductIDs: []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
}

func TestClient_ExportRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"count":0,"message":"Token expired"}`))
	})

	_, err := client.Export(context.Background(), ExportRequest{ShopDomain: "x", ProductIDs: []string{"a"}})
	require.Error(t, err)
	assert.Equal(t, "Token expired", common.UserMessage(err))
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(" ")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestStatus_Ready(t *testing.T) {
	assert.False(t, Status{Connected: true}.Ready())
	assert.False(t, Status{ShopDomain: "x"}.Ready())
	assert.True(t, Status{Connected: true, ShopDomain: "x"}.Ready())
}
