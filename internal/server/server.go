// Package server serves the HTTP API used by the mobile client: label
// scanning plus read-only catalog views and CSV export.
package server

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/schema"

	"github.com/Veraticus/digitalhaute/internal/engine"
	"github.com/Veraticus/digitalhaute/internal/export"
)

// MaxScanBody caps the scan request body. Phone photos encoded as base64
// stay well under it.
const MaxScanBody = 20 << 20

// Server routes API requests to the engine.
type Server struct {
	engine  *engine.Engine
	logger  *slog.Logger
	decoder *schema.Decoder
	now     func() time.Time
}

// New creates a server for e.
func New(e *engine.Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Server{
		engine:  e,
		logger:  logger,
		decoder: decoder,
		now:     time.Now,
	}
}

// Handler returns the root handler with every route and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/scan-label", s.scanLabel)

	mux.HandleFunc("GET /api/products", s.listProducts)
	mux.HandleFunc("GET /api/products/{id}", s.getProduct)
	mux.HandleFunc("GET /api/vendors", s.listVendors)
	mux.HandleFunc("GET /api/vendors/{id}", s.getVendor)
	mux.HandleFunc("GET /api/budgets", s.listBudgets)
	mux.HandleFunc("GET /api/dashboard", s.dashboard)
	mux.HandleFunc("GET /api/settings", s.settings)
	mux.HandleFunc("GET /api/export/csv", s.exportCSV)

	return s.withRecover(s.withLogging(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := s.httpServer(addr)
	return s.serve(ctx, srv, srv.ListenAndServe)
}

// ListenAndServeTLS is ListenAndServe over HTTPS with cert.
func (s *Server) ListenAndServeTLS(ctx context.Context, addr string, cert tls.Certificate) error {
	srv := s.httpServer(addr)
	srv.TLSConfig = &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}
	return s.serve(ctx, srv, func() error { return srv.ListenAndServeTLS("", "") })
}

func (s *Server) httpServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) serve(ctx context.Context, srv *http.Server, listen func() error) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server listening", "addr", srv.Addr, "tls", srv.TLSConfig != nil)
		errCh <- listen()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down api server: %w", err)
		}
		return nil
	}
}

type scanRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// scanLabel always answers with a result shape once an image is present.
func (s *Server) scanLabel(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxScanBody)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Image is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Image data is required")
		return
	}
	if req.ImageBase64 == "" {
		writeError(w, http.StatusBadRequest, "Image data is required")
		return
	}

	result := s.engine.ScanLabel(r.Context(), req.ImageBase64)
	writeJSON(w, http.StatusOK, scanResponse{Success: true, Data: result})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	var filter engine.ProductFilter
	if err := s.decoder.Decode(&filter, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query")
		return
	}
	writeJSON(w, http.StatusOK, s.engine.SearchProducts(r.Context(), filter))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.engine.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) listVendors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.ListVendors(r.Context()))
}

func (s *Server) getVendor(w http.ResponseWriter, r *http.Request) {
	detail, err := s.engine.GetVendor(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.ListBudgets(r.Context()))
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Dashboard(r.Context()))
}

func (s *Server) settings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Settings(r.Context()))
}

// exportQuery selects products by id, or every product with all=true.
type exportQuery struct {
	IDs []string `schema:"ids"`
	All bool     `schema:"all"`
}

func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	var q exportQuery
	if err := s.decoder.Decode(&q, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid query")
		return
	}

	if q.All {
		q.IDs = s.engine.ProductIDs(r.Context())
	}
	if len(s.engine.SelectProducts(r.Context(), q.IDs)) == 0 {
		s.writeErr(w, export.ErrNoProducts)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(s.now())))
	if _, err := s.engine.ExportCSV(r.Context(), w, q.IDs); err != nil {
		s.logger.Error("Failed to write CSV export", "error", err)
	}
}
