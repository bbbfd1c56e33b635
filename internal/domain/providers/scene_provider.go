package providers

import (
	"context"

	"github.com/vision360/backend/internal/domain/entities"
)

// SceneDescriber is the port for the opaque upstream vision model that turns
// a base64 image into free text.
type SceneDescriber interface {
	Describe(ctx context.Context, imageB64, prompt string) (*entities.SceneDescription, error)
}

// AdviceGenerator is the port for the opaque upstream LLM that turns a scene
// description plus a resolved PMR profile into structured recommendations.
type AdviceGenerator interface {
	Generate(ctx context.Context, description, profileName string, profileData map[string]any, instruction string) (*entities.GeneratedAdvice, error)
}
