package capability

import (
	"testing"

	"github.com/gavasques/viralzera-sub001/internal/openrouter"
)

func TestClassify_NilDescriptor(t *testing.T) {
	caps := Classify(nil)
	if caps.Reasoning || caps.Tools || caps.WebSearch || caps.NativeWebSearch {
		t.Errorf("nil descriptor should yield the zero set, got %+v", caps)
	}
}

func TestClassify_DeclaredParameters(t *testing.T) {
	m := &openrouter.Model{
		ID:                  "some/model",
		SupportedParameters: []string{"reasoning", "tools", "temperature", "seed"},
	}
	caps := Classify(m)
	if !caps.Reasoning {
		t.Error("declared reasoning not recognised")
	}
	if !caps.Tools {
		t.Error("declared tools not recognised")
	}
	if !caps.Temperature || !caps.Seed {
		t.Error("parameter booleans not surfaced")
	}
	if caps.TopK {
		t.Error("top_k should be false when not declared")
	}
	if !caps.WebSearch {
		t.Error("web search must be true for any real model")
	}
}

func TestClassify_IncludeReasoningAlias(t *testing.T) {
	m := &openrouter.Model{ID: "x/y", SupportedParameters: []string{"include_reasoning"}}
	if !Classify(m).Reasoning {
		t.Error("include_reasoning should count as reasoning support")
	}
}

func TestClassify_NoToolsHeuristic(t *testing.T) {
	// Tools require declared metadata; there is no id heuristic.
	m := &openrouter.Model{ID: "openai/o1"}
	if Classify(m).Tools {
		t.Error("tools should be false without metadata")
	}
}

func TestClassify_ReasoningHeuristics(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"deepseek/deepseek-r1", true},
		{"openai/o1-preview", true},
		{"openai/o3-mini", true},
		{"qwen/qwq-32b", true},
		{"anthropic/claude-3.5-sonnet", true},
		{"anthropic/claude-3.7-sonnet", true},
		{"anthropic/claude-3-haiku", false},
		{"anthropic/claude-sonnet-4", true},
		{"anthropic/claude-opus-4", true},
		{"google/gemini-2.0-flash-thinking-exp", true},
		{"google/gemini-2.0-flash", false},
		{"openai/gpt-4o", false},
		{"mistralai/mistral-large", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := Classify(&openrouter.Model{ID: tt.id}).Reasoning
			if got != tt.want {
				t.Errorf("Reasoning(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestClassify_DeclaredBeatsHeuristic(t *testing.T) {
	// Metadata present but without reasoning: the heuristic must not run.
	m := &openrouter.Model{ID: "openai/o1", SupportedParameters: []string{"temperature"}}
	if Classify(m).Reasoning {
		t.Error("declared metadata without reasoning should win over the id heuristic")
	}
}

func TestClassify_NativeWebSearch(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"perplexity/sonar", true},
		{"openai/gpt-4o", true},
		{"anthropic/claude-sonnet-4", true},
		{"x-ai/grok-3", true},
		{"mistralai/mistral-large", false},
	}
	for _, tt := range tests {
		got := Classify(&openrouter.Model{ID: tt.id}).NativeWebSearch
		if got != tt.want {
			t.Errorf("NativeWebSearch(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestClassify_Defaults(t *testing.T) {
	m := &openrouter.Model{ID: "x/y", DefaultParameters: map[string]any{"temperature": 0.9}}
	caps := Classify(m)
	if caps.Defaults["temperature"] != 0.9 {
		t.Errorf("defaults not echoed: %+v", caps.Defaults)
	}
}
