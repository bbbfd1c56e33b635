// Package gemini calls the Google Gemini vision API to turn an image into a
// free-text scene description. The contract is opaque: the response text is
// passed through untouched.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vision360/backend/internal/domain/entities"
	"github.com/vision360/backend/internal/infrastructure/observability"
	"github.com/vision360/backend/pkg/config"
	apperrors "github.com/vision360/backend/pkg/errors"
	"github.com/vision360/backend/pkg/retry"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// DefaultPrompt asks for products, brands and relative positions, matching
// what the mobile client expects to have read aloud.
const DefaultPrompt = "Décris précisément les produits/objets visibles, marques ou catégories, positions relatives."

// Client implements the SceneDescriber provider against Gemini.
type Client struct {
	apiKey     string
	model      string
	apiVersion string
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
}

// NewClient creates a new Gemini client.
func NewClient(cfg *config.GeminiConfig, metrics *observability.Metrics) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "v1beta"
	}

	return &Client{
		apiKey:     cfg.APIKey,
		model:      model,
		apiVersion: apiVersion,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		metrics: metrics,
	}, nil
}

// SetBaseURL overrides the API endpoint, used by tests.
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

type candidatePart struct {
	Text string `json:"text"`
}

type candidateContent struct {
	Parts []candidatePart `json:"parts"`
}

type candidate struct {
	Content candidateContent `json:"content"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

// Describe sends the image and prompt to Gemini and returns the extracted
// description text. Non-2xx upstream responses are propagated with their
// status and body; transient failures (network, 429, 5xx) are retried with
// backoff.
func (c *Client) Describe(ctx context.Context, imageB64, prompt string) (*entities.SceneDescription, error) {
	if prompt == "" {
		prompt = DefaultPrompt
	}

	// Strip a data:image/...;base64, prefix if the client sent one.
	b64 := imageB64
	if idx := strings.Index(b64, ","); idx >= 0 {
		b64 = b64[idx+1:]
	}

	payload := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]any{
					{"text": prompt},
					{
						"inline_data": map[string]string{
							"mime_type": "image/jpeg",
							"data":      b64,
						},
					},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, c.apiVersion, c.model)

	var (
		status   int
		respBody []byte
	)
	err = retry.Do(ctx, retry.DefaultConfig(), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			observability.RecordUpstreamMetric(ctx, c.metrics, "gemini", c.model, 0, time.Since(start))
			return err
		}
		defer resp.Body.Close()

		status = resp.StatusCode
		respBody, err = io.ReadAll(resp.Body)
		observability.RecordUpstreamMetric(ctx, c.metrics, "gemini", c.model, status, time.Since(start))
		if err != nil {
			return err
		}
		if status == http.StatusTooManyRequests || status >= 500 {
			return fmt.Errorf("transient gemini status %d", status)
		}
		return nil
	})
	if err != nil {
		if status != 0 {
			return nil, apperrors.NewUpstreamError(status, string(respBody))
		}
		return nil, apperrors.NewInternalError("gemini call failed", err)
	}

	if status < 200 || status >= 300 {
		return nil, apperrors.NewUpstreamError(status, string(respBody))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, apperrors.NewInternalError("failed to parse gemini response", err)
	}

	var texts []string
	if len(parsed.Candidates) > 0 {
		for _, part := range parsed.Candidates[0].Content.Parts {
			if part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
	}

	return &entities.SceneDescription{
		Text:   strings.TrimSpace(strings.Join(texts, " ")),
		Prompt: prompt,
		Model:  c.model,
		Raw:    respBody,
	}, nil
}
