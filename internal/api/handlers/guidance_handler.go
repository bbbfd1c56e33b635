package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vision360/backend/internal/domain/entities"
)

// Enricher produces enrichments for raw detections.
type Enricher interface {
	Enrich(det entities.Detection) entities.Enrichment
	EnrichBatch(detections []entities.Detection) []entities.Enrichment
}

// Adviser aggregates a scene into one advisory bundle.
type Adviser interface {
	Advise(detections []entities.Detection, enrichments []entities.Enrichment, profile, context string) entities.AdviceBundle
}

// GuidanceHandler exposes the detection-enrichment and advisory engine. It
// owns validation and serialization only; all decision logic lives in the
// services.
type GuidanceHandler struct {
	enricher Enricher
	adviser  Adviser
}

// NewGuidanceHandler creates a new guidance handler.
func NewGuidanceHandler(enricher Enricher, adviser Adviser) *GuidanceHandler {
	return &GuidanceHandler{
		enricher: enricher,
		adviser:  adviser,
	}
}

type enrichRequest struct {
	Detection   entities.Detection `json:"detection"`
	ProfileHint string             `json:"profile_hint,omitempty"`
}

type enrichBatchRequest struct {
	Detections  []entities.Detection `json:"detections"`
	ProfileHint string               `json:"profile_hint,omitempty"`
}

type adviceRequest struct {
	Profile     string                `json:"profile"`
	Context     string                `json:"context"`
	Detections  []entities.Detection  `json:"detections"`
	Enrichments []entities.Enrichment `json:"enrichments"`
}

// EnrichDetection handles POST /api/guidance/enrich
func (h *GuidanceHandler) EnrichDetection(w http.ResponseWriter, r *http.Request) {
	var payload enrichRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if msg, ok := validateDetection(payload.Detection); !ok {
		respondWithError(w, http.StatusBadRequest, msg)
		return
	}

	respondWithJSON(w, http.StatusOK, h.enricher.Enrich(payload.Detection))
}

// EnrichBatch handles POST /api/guidance/enrich/batch
//
// All detections of a frame are processed in one request; the response list
// matches the input order and length.
func (h *GuidanceHandler) EnrichBatch(w http.ResponseWriter, r *http.Request) {
	var payload enrichBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	for i, det := range payload.Detections {
		if msg, ok := validateDetection(det); !ok {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("detection %d: %s", i, msg))
			return
		}
	}

	respondWithJSON(w, http.StatusOK, h.enricher.EnrichBatch(payload.Detections))
}

// Advise handles POST /api/guidance/advise
func (h *GuidanceHandler) Advise(w http.ResponseWriter, r *http.Request) {
	var payload adviceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	for i, det := range payload.Detections {
		if msg, ok := validateDetection(det); !ok {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("detection %d: %s", i, msg))
			return
		}
	}

	bundle := h.adviser.Advise(payload.Detections, payload.Enrichments, payload.Profile, payload.Context)
	respondWithJSON(w, http.StatusOK, bundle)
}

// validateDetection enforces the entry contract: class is required and the
// confidence score must lie in [0, 1]. Zone and side stay free-form on
// purpose; out-of-vocabulary values are treated as non-matching downstream,
// not rejected here.
func validateDetection(det entities.Detection) (string, bool) {
	if strings.TrimSpace(det.ClassName) == "" {
		return "class is required", false
	}
	if det.Score < 0 || det.Score > 1 {
		return "score must be between 0.0 and 1.0", false
	}
	return "", true
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
