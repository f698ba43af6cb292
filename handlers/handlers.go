package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"pricetrail/analysis"
	"pricetrail/history"
	"pricetrail/models"
	"pricetrail/scraper"
	"pricetrail/tracker"
)

type Handlers struct {
	tracker *tracker.Tracker
	store   history.Store
}

func NewHandlers(t *tracker.Tracker, store history.Store) *Handlers {
	return &Handlers{tracker: t, store: store}
}

// TrackProduct handles POST /api/v1/track: one full
// scrape-extract-analyze-recommend cycle.
func (h *Handlers) TrackProduct(w http.ResponseWriter, r *http.Request) {
	var req models.TrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	target := decimal.NewFromFloat(req.TargetPrice)
	result, err := h.tracker.Track(r.Context(), req.URL, target)
	if err != nil {
		h.writeTrackError(w, err)
		return
	}

	if req.Currency != "" {
		result.Currency = req.Currency
	}
	writeJSON(w, http.StatusOK, result)
}

// GetProducts handles GET /api/v1/products.
func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.Products()
	if err != nil {
		log.Printf("Failed to list products: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products, "count": len(products)})
}

// GetHistory handles GET /api/v1/products/{id}/history.
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	observations, err := h.store.ReadAll(id)
	if err != nil {
		log.Printf("Failed to read history for %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to read history")
		return
	}
	if len(observations) == 0 {
		writeError(w, http.StatusNotFound, "No history for product")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"product_id":   id,
		"observations": observations,
		"count":        len(observations),
	})
}

// GetAnalysis handles GET /api/v1/products/{id}/analysis: statistics
// recomputed fresh from the store's current contents.
func (h *Handlers) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	observations, err := h.store.ReadAll(id)
	if err != nil {
		log.Printf("Failed to read history for %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to read history")
		return
	}

	stats, err := analysis.Analyze(observations)
	if err != nil {
		if errors.Is(err, analysis.ErrInsufficientHistory) {
			writeError(w, http.StatusNotFound, "No history for product")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to analyze history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"product_id": id,
		"statistics": stats,
		"provenance": models.ProvenanceReal,
	})
}

// writeTrackError maps pipeline failures onto HTTP statuses without
// masking what went wrong.
func (h *Handlers) writeTrackError(w http.ResponseWriter, err error) {
	var fetchErr *scraper.FetchError
	switch {
	case errors.As(err, &fetchErr):
		log.Printf("Fetch failure: %v", err)
		writeError(w, http.StatusBadGateway, "Failed to fetch product page")
	case errors.Is(err, scraper.ErrPriceNotFound):
		writeError(w, http.StatusUnprocessableEntity, "Could not determine price for this page")
	case errors.Is(err, scraper.ErrParseFailed):
		writeError(w, http.StatusUnprocessableEntity, "Could not parse product page")
	default:
		log.Printf("Track failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Tracking failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
