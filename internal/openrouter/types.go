package openrouter

// Message is one entry in the conversation sent to the provider.
// Content is either a plain string or a []ContentPart for multimodal
// messages (the last user message when attachments are present).
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is a single fragment of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"` // "text" or "image_url"
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageRef `json:"image_url,omitempty"`
}

type ImageRef struct {
	URL string `json:"url"`
}

// Attachment describes an uploaded file ready to be woven into a message.
// Content holds server-side extracted text for non-image types; it is
// empty when extraction failed or was not attempted.
type Attachment struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	Content  string `json:"content,omitempty"`
}

// Request is the outbound chat-completion body.
type Request struct {
	Model       string     `json:"model"`
	Messages    []Message  `json:"messages"`
	Temperature float64    `json:"temperature"`
	MaxTokens   int        `json:"max_tokens"`
	Plugins     []Plugin   `json:"plugins,omitempty"`
	Reasoning   *Reasoning `json:"reasoning,omitempty"`
}

type Plugin struct {
	ID string `json:"id"`
}

type Reasoning struct {
	Effort string `json:"effort"` // minimal | low | medium | high | xhigh
}

// Options carries the caller's per-turn settings for BuildRequest.
// Nil Temperature/MaxTokens fall back to the request defaults.
type Options struct {
	Temperature     *float64
	MaxTokens       *int
	Files           []Attachment
	EnableWebSearch bool
	EnableReasoning bool
	ReasoningEffort string
}

// Usage is the normalized token accounting for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
	ReasoningTokens  int `json:"reasoning_tokens"`
}

// Citation is one web-search annotation attached to a completion.
type Citation struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

// Completion is the normalized result of one chat turn.
type Completion struct {
	Content      string     `json:"content"`
	Role         string     `json:"role"`
	Usage        *Usage     `json:"usage,omitempty"`
	Citations    []Citation `json:"citations,omitempty"`
	Model        string     `json:"model"`
	FinishReason string     `json:"finish_reason"`
}

// Model is one entry from the public model catalog.
type Model struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	SupportedParameters []string       `json:"supported_parameters,omitempty"`
	DefaultParameters   map[string]any `json:"default_parameters,omitempty"`
	Pricing             map[string]any `json:"pricing,omitempty"`
	ContextLength       int            `json:"context_length,omitempty"`
}
