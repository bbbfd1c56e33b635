package entities

// Depth zones reported by the upstream detector. Zone stays a free-form
// string: unrecognized values pass through untouched and simply match no
// guidance rule.
const (
	ZoneNear = "near"
	ZoneMid  = "mid"
	ZoneFar  = "far"
)

// Lateral positions reported by the upstream detector.
const (
	SideLeft   = "left"
	SideCenter = "center"
	SideRight  = "right"
)

// Detection is a single object instance reported by an upstream vision model.
// The "class" JSON key mirrors the wire format of the client-side COCO-SSD
// detector.
type Detection struct {
	ClassName string  `json:"class"`
	Score     float64 `json:"score"`
	Zone      string  `json:"zone,omitempty"`
	Side      string  `json:"side,omitempty"`
	OCR       string  `json:"ocr,omitempty"`
	Context   string  `json:"context,omitempty"`
}

// Enrichment is the derived, read-only view of one Detection: a French
// summary of the object category, key attributes and the PMR risks it
// carries. It is a pure function of the detection and the static
// classification catalog.
type Enrichment struct {
	Summary    string            `json:"summary"`
	Attributes map[string]string `json:"attributes"`
	Risks      []string          `json:"risks"`
	ClassName  string            `json:"class_name,omitempty"`
	Zone       string            `json:"zone,omitempty"`
	Side       string            `json:"side,omitempty"`
}

// Advisory priority levels.
const (
	PriorityInfo = "info"
	PriorityHigh = "high"
)

// Notification channels for advisory delivery.
const (
	ChannelVoice  = "voice"
	ChannelHaptic = "haptic"
)

// AdviceBundle is the aggregate prioritized guidance for a full scene.
// Channels always contains "voice"; "haptic" is added when priority is high.
type AdviceBundle struct {
	Priority string   `json:"priority"`
	Channels []string `json:"channel"`
	Messages []string `json:"messages"`
}
