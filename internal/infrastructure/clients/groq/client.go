// Package groq calls the Groq chat-completions API (OpenAI-compatible) to
// turn a scene description plus a PMR profile into structured
// recommendations.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vision360/backend/internal/domain/entities"
	"github.com/vision360/backend/internal/infrastructure/observability"
	"github.com/vision360/backend/pkg/config"
	apperrors "github.com/vision360/backend/pkg/errors"
	"github.com/vision360/backend/pkg/retry"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultInstruction is the output contract sent to the model when the
// caller does not supply one.
const DefaultInstruction = `Génère un JSON minimal : {"summary": string, "risks": [string], "actions": [string]}`

const systemPrompt = "Tu es un assistant de sécurité pour la mobilité PMR. " +
	"Réponds STRICTEMENT en JSON sans texte hors JSON. " +
	"Inclue des risques potentiels et des actions/recommandations courtes."

// Client implements the AdviceGenerator provider against Groq.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
}

// NewClient creates a new Groq client.
func NewClient(cfg *config.GroqConfig, metrics *observability.Metrics) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("groq api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "llama-3.1-8b-instant"
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
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

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Generate asks the model for recommendations. The completion content is
// parsed as the structured advice JSON when possible; callers always get the
// raw text too since small models occasionally answer outside the contract.
func (c *Client) Generate(ctx context.Context, description, profileName string, profileData map[string]any, instruction string) (*entities.GeneratedAdvice, error) {
	if instruction == "" {
		instruction = DefaultInstruction
	}
	if profileData == nil {
		profileData = map[string]any{}
	}

	profileJSON, err := json.Marshal(profileData)
	if err != nil {
		return nil, err
	}

	userPrompt := fmt.Sprintf(
		"Profil: %s\nDonnées profil: %s\nDescription:\n%s\nConsigne de sortie: %s",
		profileName, profileJSON, description, instruction,
	)

	payload := map[string]any{
		"model": c.model,
		"messages": []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		// Low temperature keeps the JSON contract stable.
		"temperature": 0.2,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var (
		status   int
		respBody []byte
	)
	err = retry.Do(ctx, retry.DefaultConfig(), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			observability.RecordUpstreamMetric(ctx, c.metrics, "groq", c.model, 0, time.Since(start))
			return err
		}
		defer resp.Body.Close()

		status = resp.StatusCode
		respBody, err = io.ReadAll(resp.Body)
		observability.RecordUpstreamMetric(ctx, c.metrics, "groq", c.model, status, time.Since(start))
		if err != nil {
			return err
		}
		if status == http.StatusTooManyRequests || status >= 500 {
			return fmt.Errorf("transient groq status %d", status)
		}
		return nil
	})
	if err != nil {
		if status != 0 {
			return nil, apperrors.NewUpstreamError(status, string(respBody))
		}
		return nil, apperrors.NewInternalError("groq call failed", err)
	}

	if status < 200 || status >= 300 {
		return nil, apperrors.NewUpstreamError(status, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, apperrors.NewInternalError("failed to parse groq response", err)
	}

	var content string
	if len(parsed.Choices) > 0 {
		content = parsed.Choices[0].Message.Content
	}

	var structured *entities.AdvicePayload
	var advice entities.AdvicePayload
	if err := json.Unmarshal([]byte(content), &advice); err == nil {
		structured = &advice
	}

	return &entities.GeneratedAdvice{
		Structured: structured,
		RawText:    content,
		Model:      c.model,
		Raw:        respBody,
	}, nil
}
