package entities

import "encoding/json"

// SceneDescription is the output of the upstream vision model for one image.
// Raw keeps the untouched provider response for client-side diagnostics.
type SceneDescription struct {
	Text   string          `json:"text"`
	Prompt string          `json:"prompt"`
	Model  string          `json:"model"`
	Raw    json.RawMessage `json:"-"`
}

// AdvicePayload is the structured JSON the advisory LLM is instructed to
// produce.
type AdvicePayload struct {
	Summary string   `json:"summary"`
	Risks   []string `json:"risks"`
	Actions []string `json:"actions"`
}

// GeneratedAdvice wraps the advisory LLM output. Structured is nil when the
// model answered with something that is not valid JSON; RawText always holds
// the verbatim completion.
type GeneratedAdvice struct {
	Structured *AdvicePayload  `json:"structured"`
	RawText    string          `json:"raw_text"`
	Model      string          `json:"model"`
	Raw        json.RawMessage `json:"-"`
}
