package services

import (
	"fmt"
	"strings"

	"github.com/vision360/backend/internal/domain/catalog"
	"github.com/vision360/backend/internal/domain/entities"
)

// Risk labels attached to enriched detections.
const (
	RiskProximity = "Obstacle proche"
	RiskSlip      = "Risque de glissade"
	RiskElevation = "Prévoir montée/descente"
)

// EnrichmentService turns raw detections into PMR-oriented enrichments. It
// holds no state and performs no I/O, so a single instance can serve any
// number of concurrent requests.
type EnrichmentService struct{}

// NewEnrichmentService creates a new enrichment service.
func NewEnrichmentService() *EnrichmentService {
	return &EnrichmentService{}
}

// Enrich derives the description, attributes and risks for one detection.
// Matching is done on the lower-cased class label; the original casing is
// kept in the output for traceability. Unknown labels degrade to a generic
// description instead of failing.
func (s *EnrichmentService) Enrich(det entities.Detection) entities.Enrichment {
	cls := strings.ToLower(det.ClassName)

	summary, ok := catalog.Lookup(cls)
	if !ok {
		summary = fmt.Sprintf("Objet %s", det.ClassName)
	}

	// Risk rules are evaluated in a fixed order: proximity first, then the
	// hazards inherent to the object itself (slip, elevation change), which
	// fire independent of zone.
	risks := []string{}
	if catalog.IsHazard(cls) {
		if det.Zone == entities.ZoneNear {
			risks = append(risks, RiskProximity)
		}
		if cls == "puddle" {
			risks = append(risks, RiskSlip)
		}
		if cls == "stairs" {
			risks = append(risks, RiskElevation)
		}
	}

	attrs := map[string]string{
		"zone":  valueOrUnknown(det.Zone),
		"side":  valueOrUnknown(det.Side),
		"score": fmt.Sprintf("%.2f", det.Score),
	}
	if det.OCR != "" {
		attrs["ocr"] = det.OCR
	}
	if det.Context != "" {
		attrs["context"] = det.Context
	}

	return entities.Enrichment{
		Summary:    summary,
		Attributes: attrs,
		Risks:      risks,
		ClassName:  det.ClassName,
		Zone:       det.Zone,
		Side:       det.Side,
	}
}

// EnrichBatch enriches a whole frame of detections. The output preserves the
// input order and length.
func (s *EnrichmentService) EnrichBatch(detections []entities.Detection) []entities.Enrichment {
	enrichments := make([]entities.Enrichment, 0, len(detections))
	for _, det := range detections {
		enrichments = append(enrichments, s.Enrich(det))
	}
	return enrichments
}

func valueOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
