package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vision360/backend/internal/domain/entities"
	"github.com/vision360/backend/internal/domain/providers"
	"github.com/vision360/backend/internal/infrastructure/observability"
	apperrors "github.com/vision360/backend/pkg/errors"
)

// Scene descriptions are keyed by image+prompt and expire after an hour.
const sceneCacheTTLSeconds = 3600

// ProfileResolver resolves named PMR profiles for the advisory prompt.
type ProfileResolver interface {
	Resolve(name string, override map[string]any) map[string]any
}

// DescribeHandler fronts the two opaque AI upstreams: the vision model that
// describes an image and the LLM that generates recommendations from a
// description.
type DescribeHandler struct {
	describer providers.SceneDescriber
	generator providers.AdviceGenerator
	profiles  ProfileResolver
	cache     providers.CacheProvider
	metrics   *observability.Metrics
}

// NewDescribeHandler creates a new describe handler. describer and generator
// may be nil when the corresponding API key is not configured; the endpoints
// then report the missing configuration.
func NewDescribeHandler(
	describer providers.SceneDescriber,
	generator providers.AdviceGenerator,
	profiles ProfileResolver,
	cache providers.CacheProvider,
	metrics *observability.Metrics,
) *DescribeHandler {
	return &DescribeHandler{
		describer: describer,
		generator: generator,
		profiles:  profiles,
		cache:     cache,
		metrics:   metrics,
	}
}

type describeRequest struct {
	ImageB64 string `json:"image_b64"`
	Prompt   string `json:"prompt,omitempty"`
}

type describeResponse struct {
	Structured *entities.SceneDescription `json:"structured"`
	Raw        json.RawMessage            `json:"raw"`
}

type generateRequest struct {
	Description     string         `json:"description"`
	Profile         string         `json:"profile,omitempty"`
	Instruction     string         `json:"instruction,omitempty"`
	ProfileOverride map[string]any `json:"profile_override,omitempty"`
}

type generateResponse struct {
	Structured *entities.AdvicePayload `json:"structured"`
	RawText    string                  `json:"raw_text"`
	Raw        json.RawMessage         `json:"raw"`
}

// DescribeScene handles POST /api/describe/gemini
func (h *DescribeHandler) DescribeScene(w http.ResponseWriter, r *http.Request) {
	if h.describer == nil {
		respondWithError(w, http.StatusInternalServerError, "GEMINI_API_KEY is not configured")
		return
	}

	var payload describeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.ImageB64) == "" {
		respondWithError(w, http.StatusBadRequest, "image_b64 is required")
		return
	}

	cacheKey := sceneCacheKey(payload.ImageB64, payload.Prompt)
	if h.cache != nil {
		if data, err := h.cache.Get(r.Context(), cacheKey); err == nil {
			observability.RecordCacheHit(r.Context(), h.metrics, "describe:scene")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		}
		observability.RecordCacheMiss(r.Context(), h.metrics, "describe:scene")
	}

	description, err := h.describer.Describe(r.Context(), payload.ImageB64, payload.Prompt)
	if err != nil {
		respondUpstreamError(w, err, "scene description failed")
		return
	}

	response := describeResponse{Structured: description, Raw: description.Raw}
	if h.cache != nil {
		if data, err := json.Marshal(response); err == nil {
			_ = h.cache.Set(r.Context(), cacheKey, data, sceneCacheTTLSeconds)
		}
	}

	respondWithJSON(w, http.StatusOK, response)
}

// GenerateAdvice handles POST /api/describe/groq
func (h *DescribeHandler) GenerateAdvice(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		respondWithError(w, http.StatusInternalServerError, "GROQ_API_KEY is not configured")
		return
	}

	var payload generateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.Description) == "" {
		respondWithError(w, http.StatusBadRequest, "description is required")
		return
	}

	profile := payload.Profile
	if profile == "" {
		profile = "default"
	}
	profileData := h.profiles.Resolve(profile, payload.ProfileOverride)

	advice, err := h.generator.Generate(r.Context(), payload.Description, profile, profileData, payload.Instruction)
	if err != nil {
		respondUpstreamError(w, err, "advice generation failed")
		return
	}

	respondWithJSON(w, http.StatusOK, generateResponse{
		Structured: advice.Structured,
		RawText:    advice.RawText,
		Raw:        advice.Raw,
	})
}

// respondUpstreamError propagates the upstream status and body when the
// failure came from the external service, and hides internals otherwise.
func respondUpstreamError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeUpstream {
		respondWithError(w, appErr.Status, appErr.Message)
		return
	}
	respondWithError(w, http.StatusInternalServerError, fallback)
}

func sceneCacheKey(imageB64, prompt string) string {
	hash := sha256.Sum256([]byte(prompt + "|" + imageB64))
	return "describe:scene:" + hex.EncodeToString(hash[:])
}
