package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vision360/backend/internal/api/handlers"
	"github.com/vision360/backend/internal/domain/entities"
	apperrors "github.com/vision360/backend/pkg/errors"
)

type stubDescriber struct {
	description *entities.SceneDescription
	err         error
	calls       int
}

func (s *stubDescriber) Describe(ctx context.Context, imageB64, prompt string) (*entities.SceneDescription, error) {
	s.calls++
	return s.description, s.err
}

type stubGenerator struct {
	advice      *entities.GeneratedAdvice
	err         error
	gotProfile  string
	gotData     map[string]any
	gotDescr    string
	gotInstruct string
}

func (s *stubGenerator) Generate(ctx context.Context, description, profileName string, profileData map[string]any, instruction string) (*entities.GeneratedAdvice, error) {
	s.gotDescr = description
	s.gotProfile = profileName
	s.gotData = profileData
	s.gotInstruct = instruction
	return s.advice, s.err
}

type stubProfiles struct {
	catalog map[string]map[string]any
}

func (s *stubProfiles) Resolve(name string, override map[string]any) map[string]any {
	if override != nil {
		return override
	}
	if p, ok := s.catalog[name]; ok {
		return p
	}
	return s.catalog["default"]
}

type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("miss")
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ int) error {
	c.data[key] = value
	return nil
}

func (c *mapCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *mapCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}

func TestDescribeHandler_DescribeScene_Success(t *testing.T) {
	describer := &stubDescriber{description: &entities.SceneDescription{
		Text:  "Un escalier devant",
		Model: "gemini-2.0-flash-exp",
		Raw:   json.RawMessage(`{"candidates":[]}`),
	}}
	handler := handlers.NewDescribeHandler(describer, nil, &stubProfiles{}, nil, nil)

	body := `{"image_b64": "AAAA", "prompt": "describe"}`
	req := httptest.NewRequest("POST", "/api/describe/gemini", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.DescribeScene(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Structured entities.SceneDescription `json:"structured"`
		Raw        json.RawMessage           `json:"raw"`
	}
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Un escalier devant", response.Structured.Text)
	assert.JSONEq(t, `{"candidates":[]}`, string(response.Raw))
}

func TestDescribeHandler_DescribeScene_RequiresImage(t *testing.T) {
	handler := handlers.NewDescribeHandler(&stubDescriber{}, nil, &stubProfiles{}, nil, nil)

	req := httptest.NewRequest("POST", "/api/describe/gemini", strings.NewReader(`{"prompt": "x"}`))
	w := httptest.NewRecorder()

	handler.DescribeScene(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDescribeHandler_DescribeScene_MissingKeyIsServerError(t *testing.T) {
	handler := handlers.NewDescribeHandler(nil, nil, &stubProfiles{}, nil, nil)

	req := httptest.NewRequest("POST", "/api/describe/gemini", strings.NewReader(`{"image_b64": "AAAA"}`))
	w := httptest.NewRecorder()

	handler.DescribeScene(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDescribeHandler_DescribeScene_PropagatesUpstreamStatus(t *testing.T) {
	describer := &stubDescriber{err: apperrors.NewUpstreamError(http.StatusTooManyRequests, "quota exceeded")}
	handler := handlers.NewDescribeHandler(describer, nil, &stubProfiles{}, nil, nil)

	req := httptest.NewRequest("POST", "/api/describe/gemini", strings.NewReader(`{"image_b64": "AAAA"}`))
	w := httptest.NewRecorder()

	handler.DescribeScene(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var response map[string]string
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "quota exceeded", response["error"])
}

func TestDescribeHandler_DescribeScene_CachesByImageAndPrompt(t *testing.T) {
	describer := &stubDescriber{description: &entities.SceneDescription{Text: "cached scene"}}
	cache := newMapCache()
	handler := handlers.NewDescribeHandler(describer, nil, &stubProfiles{}, cache, nil)

	body := `{"image_b64": "AAAA", "prompt": "describe"}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/describe/gemini", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.DescribeScene(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 1, describer.calls)

	// A different prompt is a different cache entry.
	req := httptest.NewRequest("POST", "/api/describe/gemini", strings.NewReader(`{"image_b64": "AAAA", "prompt": "other"}`))
	w := httptest.NewRecorder()
	handler.DescribeScene(w, req)
	assert.Equal(t, 2, describer.calls)
}

func TestDescribeHandler_GenerateAdvice_ResolvesProfile(t *testing.T) {
	generator := &stubGenerator{advice: &entities.GeneratedAdvice{
		Structured: &entities.AdvicePayload{Summary: "ok"},
		RawText:    `{"summary":"ok"}`,
	}}
	profiles := &stubProfiles{catalog: map[string]map[string]any{
		"default":    {"mobility": "none"},
		"wheelchair": {"mobility": "wheelchair"},
	}}
	handler := handlers.NewDescribeHandler(nil, generator, profiles, nil, nil)

	body := `{"description": "un escalier", "profile": "wheelchair"}`
	req := httptest.NewRequest("POST", "/api/describe/groq", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.GenerateAdvice(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "wheelchair", generator.gotProfile)
	assert.Equal(t, map[string]any{"mobility": "wheelchair"}, generator.gotData)
	assert.Equal(t, "un escalier", generator.gotDescr)
}

func TestDescribeHandler_GenerateAdvice_OverrideWins(t *testing.T) {
	generator := &stubGenerator{advice: &entities.GeneratedAdvice{RawText: "text"}}
	profiles := &stubProfiles{catalog: map[string]map[string]any{
		"wheelchair": {"mobility": "wheelchair"},
	}}
	handler := handlers.NewDescribeHandler(nil, generator, profiles, nil, nil)

	body := `{"description": "scene", "profile": "wheelchair", "profile_override": {"mobility": "cane"}}`
	req := httptest.NewRequest("POST", "/api/describe/groq", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.GenerateAdvice(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"mobility": "cane"}, generator.gotData)
}

func TestDescribeHandler_GenerateAdvice_RequiresDescription(t *testing.T) {
	handler := handlers.NewDescribeHandler(nil, &stubGenerator{}, &stubProfiles{}, nil, nil)

	req := httptest.NewRequest("POST", "/api/describe/groq", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler.GenerateAdvice(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
