package services

import (
	"fmt"

	"github.com/vision360/backend/internal/domain/entities"
)

const fallbackMessage = "Aucun obstacle critique détecté"

// defaultSide is spoken when a near obstacle carries no lateral hint.
const defaultSide = "devant"

// AdviceService aggregates detections and enrichments into one prioritized
// advisory bundle per scene. Like the enricher it is stateless and pure.
type AdviceService struct{}

// NewAdviceService creates a new advice service.
func NewAdviceService() *AdviceService {
	return &AdviceService{}
}

// Advise builds the advisory bundle for a scene. Two passes run in order:
// first the raw detections for near obstacles, then the enrichment risks.
// Priority escalation is sticky: one near detection is enough to keep the
// whole bundle at high priority. The profile and context arguments are
// accepted as personalization hints but do not change message content yet.
func (s *AdviceService) Advise(detections []entities.Detection, enrichments []entities.Enrichment, profile, context string) entities.AdviceBundle {
	_ = profile
	_ = context

	messages := []string{}
	priority := entities.PriorityInfo

	for _, det := range detections {
		if det.Zone == entities.ZoneNear {
			priority = entities.PriorityHigh
			side := det.Side
			if side == "" {
				side = defaultSide
			}
			messages = append(messages, fmt.Sprintf("Obstacle %s %s, ralentir", det.ClassName, side))
		}
	}

	for _, enr := range enrichments {
		for _, risk := range enr.Risks {
			messages = append(messages, fmt.Sprintf("%s: %s", enr.Summary, risk))
		}
	}

	if len(messages) == 0 {
		messages = append(messages, fallbackMessage)
	}

	channels := []string{entities.ChannelVoice}
	if priority == entities.PriorityHigh {
		channels = append(channels, entities.ChannelHaptic)
	}

	return entities.AdviceBundle{
		Priority: priority,
		Channels: channels,
		Messages: messages,
	}
}
