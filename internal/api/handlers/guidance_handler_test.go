package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vision360/backend/internal/api/handlers"
	"github.com/vision360/backend/internal/application/services"
	"github.com/vision360/backend/internal/domain/entities"
)

func newGuidanceHandler() *handlers.GuidanceHandler {
	return handlers.NewGuidanceHandler(services.NewEnrichmentService(), services.NewAdviceService())
}

func TestGuidanceHandler_Enrich_Success(t *testing.T) {
	handler := newGuidanceHandler()

	body := `{"detection": {"class": "stairs", "score": 0.92, "zone": "near", "side": "left"}}`
	req := httptest.NewRequest("POST", "/api/guidance/enrich", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.EnrichDetection(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var enr entities.Enrichment
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&enr))
	assert.Equal(t, "Escalier", enr.Summary)
	assert.Equal(t, map[string]string{"zone": "near", "side": "left", "score": "0.92"}, enr.Attributes)
	assert.Equal(t, []string{"Obstacle proche", "Prévoir montée/descente"}, enr.Risks)
}

func TestGuidanceHandler_Enrich_RejectsMissingClass(t *testing.T) {
	handler := newGuidanceHandler()

	body := `{"detection": {"score": 0.5}}`
	req := httptest.NewRequest("POST", "/api/guidance/enrich", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.EnrichDetection(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGuidanceHandler_Enrich_RejectsOutOfRangeScore(t *testing.T) {
	handler := newGuidanceHandler()

	for _, body := range []string{
		`{"detection": {"class": "person", "score": 1.2}}`,
		`{"detection": {"class": "person", "score": -0.1}}`,
	} {
		req := httptest.NewRequest("POST", "/api/guidance/enrich", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.EnrichDetection(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestGuidanceHandler_Enrich_RejectsMalformedJSON(t *testing.T) {
	handler := newGuidanceHandler()

	req := httptest.NewRequest("POST", "/api/guidance/enrich", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.EnrichDetection(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGuidanceHandler_EnrichBatch_PreservesOrder(t *testing.T) {
	handler := newGuidanceHandler()

	body := `{"detections": [
		{"class": "person", "score": 0.9, "zone": "near"},
		{"class": "table", "score": 0.4},
		{"class": "ufo", "score": 0.1}
	]}`
	req := httptest.NewRequest("POST", "/api/guidance/enrich/batch", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.EnrichBatch(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var enrichments []entities.Enrichment
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&enrichments))
	assert.Len(t, enrichments, 3)
	assert.Equal(t, "Personne à proximité", enrichments[0].Summary)
	assert.Equal(t, "Table", enrichments[1].Summary)
	assert.Equal(t, "Objet ufo", enrichments[2].Summary)
}

func TestGuidanceHandler_EnrichBatch_RejectsInvalidItemWithIndex(t *testing.T) {
	handler := newGuidanceHandler()

	body := `{"detections": [
		{"class": "person", "score": 0.9},
		{"class": "cone", "score": 7}
	]}`
	req := httptest.NewRequest("POST", "/api/guidance/enrich/batch", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.EnrichBatch(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response["error"], "detection 1")
}

func TestGuidanceHandler_Advise_NearObstacle(t *testing.T) {
	handler := newGuidanceHandler()

	body := `{"profile": "wheelchair", "context": "street", "detections": [
		{"class": "person", "score": 0.8, "zone": "near", "side": "center"}
	]}`
	req := httptest.NewRequest("POST", "/api/guidance/advise", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Advise(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var bundle entities.AdviceBundle
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&bundle))
	assert.Equal(t, "high", bundle.Priority)
	assert.Equal(t, []string{"voice", "haptic"}, bundle.Channels)
	assert.Equal(t, []string{"Obstacle person center, ralentir"}, bundle.Messages)
}

func TestGuidanceHandler_Advise_EmptyScene(t *testing.T) {
	handler := newGuidanceHandler()

	body := `{"profile": "cane", "context": "restaurant", "detections": [], "enrichments": []}`
	req := httptest.NewRequest("POST", "/api/guidance/advise", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Advise(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var bundle entities.AdviceBundle
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&bundle))
	assert.Equal(t, "info", bundle.Priority)
	assert.Equal(t, []string{"voice"}, bundle.Channels)
	assert.Equal(t, []string{"Aucun obstacle critique détecté"}, bundle.Messages)
}

func TestGuidanceHandler_Advise_WithPrecomputedEnrichments(t *testing.T) {
	handler := newGuidanceHandler()

	body := `{"profile": "", "context": "", "detections": [],
		"enrichments": [{"summary": "Zone glissante", "attributes": {}, "risks": ["Risque de glissade"]}]}`
	req := httptest.NewRequest("POST", "/api/guidance/advise", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Advise(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var bundle entities.AdviceBundle
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&bundle))
	assert.Equal(t, "info", bundle.Priority)
	assert.Equal(t, []string{"Zone glissante: Risque de glissade"}, bundle.Messages)
}
