package openrouter

import (
	"errors"
	"strings"
)

// ErrModelNotSelected is returned when a request is built without a model id.
var ErrModelNotSelected = errors.New("no model selected")

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 32000
	defaultEffort      = "medium"
)

// BuildRequest assembles the outbound chat-completion body from the
// conversation history and the caller's per-turn options. No network I/O
// happens here.
func BuildRequest(model string, messages []Message, opts Options) (*Request, error) {
	if model == "" {
		return nil, ErrModelNotSelected
	}

	if len(opts.Files) > 0 {
		messages = EncodeAttachments(messages, opts.Files)
	}

	// Strip messages down to role/content; session bookkeeping fields
	// must not leak into the wire body.
	wire := make([]Message, len(messages))
	for i, m := range messages {
		wire[i] = Message{Role: m.Role, Content: m.Content}
	}

	req := &Request{
		Model:       model,
		Messages:    wire,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}
	if opts.Temperature != nil {
		req.Temperature = *opts.Temperature
	}
	if opts.MaxTokens != nil {
		req.MaxTokens = *opts.MaxTokens
	}

	if opts.EnableWebSearch {
		req.Plugins = append(req.Plugins, Plugin{ID: "web"})
	}

	// The reasoning block is gated on the claude model family. The
	// capability classifier recognises reasoning support more broadly,
	// but only claude ids accept this request field here; see the
	// capability package for the caller-facing determination.
	if opts.EnableReasoning && strings.Contains(model, "claude") {
		effort := opts.ReasoningEffort
		if effort == "" {
			effort = defaultEffort
		}
		req.Reasoning = &Reasoning{Effort: effort}
	}

	return req, nil
}
