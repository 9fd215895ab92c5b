// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/meridian-research/newswatch/internal/contracts"
	"github.com/meridian-research/newswatch/pkg/logger"
)

const defaultRecentLimit = 50

// AlertHandler serves dispatched alert history.
type AlertHandler struct {
	history contracts.AlertHistory
	logger  *logger.Logger
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(history contracts.AlertHistory, log *logger.Logger) *AlertHandler {
	return &AlertHandler{history: history, logger: log}
}

// Recent returns recently dispatched alerts, newest first.
// GET /api/v1/alerts/recent?limit=50
func (h *AlertHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	alerts, err := h.history.Recent(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load recent alerts")
		respondError(w, http.StatusInternalServerError, "failed to load alerts")
		return
	}
	if alerts == nil {
		alerts = []contracts.Alert{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
