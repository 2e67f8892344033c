package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Veraticus/digitalhaute/internal/common"
	"github.com/Veraticus/digitalhaute/internal/export"
	"github.com/Veraticus/digitalhaute/internal/labelscan"
)

type errorResponse struct {
	Error string `json:"error"`
}

type scanResponse struct {
	Data    labelscan.Result `json:"data"`
	Success bool             `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeErr maps engine errors onto status codes.
func (s *Server) writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound), errors.Is(err, export.ErrNoProducts):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, common.UserMessage(err))
	default:
		s.logger.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
