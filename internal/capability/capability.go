// Package capability determines what a given model supports, from its
// declared catalog metadata when present, falling back to model-id
// heuristics for reasoning.
package capability

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gavasques/viralzera-sub001/internal/openrouter"
)

// Capabilities is the per-model feature set surfaced to callers.
type Capabilities struct {
	Reasoning bool `json:"reasoning"`
	Tools     bool `json:"tools"`
	// WebSearch is true for every model: search is attached through a
	// universal plugin mechanism, not a per-model feature.
	WebSearch bool `json:"web_search"`
	// NativeWebSearch is a UI hint only; it gates nothing.
	NativeWebSearch bool `json:"native_web_search"`

	Temperature      bool `json:"temperature"`
	TopP             bool `json:"top_p"`
	TopK             bool `json:"top_k"`
	FrequencyPenalty bool `json:"frequency_penalty"`
	PresencePenalty  bool `json:"presence_penalty"`
	MaxTokens        bool `json:"max_tokens"`
	Stop             bool `json:"stop"`
	Seed             bool `json:"seed"`

	Defaults map[string]any `json:"defaults,omitempty"`
}

var reasoningKeywords = []string{"thinking", "reasoning", "deepseek-r1", "o1", "o3", "qwq"}

var nativeSearchProviders = []string{"perplexity", "openai/", "anthropic/", "x-ai/", "xai/"}

var claudeVersion = regexp.MustCompile(`claude-(\d+(?:\.\d+)?)`)

// Classify computes the capability set for one model descriptor. A nil
// descriptor yields the zero set.
func Classify(m *openrouter.Model) Capabilities {
	if m == nil || m.ID == "" {
		return Capabilities{}
	}

	caps := Capabilities{
		WebSearch:       true,
		NativeWebSearch: hasNativeWebSearch(m.ID),
		Defaults:        m.DefaultParameters,
	}

	if m.SupportedParameters != nil {
		caps.Reasoning = hasParam(m, "reasoning") || hasParam(m, "include_reasoning")
	} else {
		caps.Reasoning = reasoningHeuristic(m.ID)
	}

	// Tools have no heuristic fallback: without metadata we assume none.
	caps.Tools = hasParam(m, "tools") || hasParam(m, "tool_choice")

	caps.Temperature = hasParam(m, "temperature")
	caps.TopP = hasParam(m, "top_p")
	caps.TopK = hasParam(m, "top_k")
	caps.FrequencyPenalty = hasParam(m, "frequency_penalty")
	caps.PresencePenalty = hasParam(m, "presence_penalty")
	caps.MaxTokens = hasParam(m, "max_tokens")
	caps.Stop = hasParam(m, "stop")
	caps.Seed = hasParam(m, "seed")

	return caps
}

func hasParam(m *openrouter.Model, param string) bool {
	for _, p := range m.SupportedParameters {
		if p == param {
			return true
		}
	}
	return false
}

// reasoningHeuristic guesses reasoning support from the model id when the
// catalog carries no parameter metadata.
func reasoningHeuristic(id string) bool {
	lower := strings.ToLower(id)

	for _, kw := range reasoningKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	if strings.Contains(lower, "sonnet-4") || strings.Contains(lower, "opus-4") {
		return true
	}
	if match := claudeVersion.FindStringSubmatch(lower); match != nil {
		if v, err := strconv.ParseFloat(match[1], 64); err == nil && v >= 3.5 {
			return true
		}
	}

	return strings.Contains(lower, "gemini") && strings.Contains(lower, "thinking")
}

func hasNativeWebSearch(id string) bool {
	lower := strings.ToLower(id)
	for _, p := range nativeSearchProviders {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
