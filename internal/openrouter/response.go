package openrouter

import "errors"

// ErrInvalidResponse is returned when the provider reply is missing the
// expected message shape.
var ErrInvalidResponse = errors.New("invalid response: missing message")

// apiResponse mirrors the provider reply shape we consume.
type apiResponse struct {
	Choices []struct {
		Message      *apiMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Model string    `json:"model"`
	Usage *apiUsage `json:"usage"`
}

type apiMessage struct {
	Content     string       `json:"content"`
	Annotations []annotation `json:"annotations"`
}

type apiUsage struct {
	PromptTokens            int `json:"prompt_tokens"`
	CompletionTokens        int `json:"completion_tokens"`
	TotalTokens             int `json:"total_tokens"`
	CompletionTokensDetails *struct {
		ReasoningTokens int `json:"reasoning_tokens"`
	} `json:"completion_tokens_details"`
}

type annotation struct {
	Type        string `json:"type"`
	URLCitation struct {
		URL     string `json:"url"`
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"url_citation"`
}

// ParseResponse validates and decomposes a raw provider reply into one
// normalized Completion.
func ParseResponse(raw *apiResponse) (*Completion, error) {
	if raw == nil || len(raw.Choices) == 0 || raw.Choices[0].Message == nil {
		return nil, ErrInvalidResponse
	}

	choice := raw.Choices[0]
	return &Completion{
		Content:      choice.Message.Content,
		Role:         "assistant",
		Usage:        extractUsage(raw.Usage),
		Citations:    extractCitations(choice.Message.Annotations),
		Model:        raw.Model,
		FinishReason: choice.FinishReason,
	}, nil
}

// extractUsage returns nil when the reply carried no usage block at all.
// Individual missing counters default to zero.
func extractUsage(raw *apiUsage) *Usage {
	if raw == nil {
		return nil
	}
	u := &Usage{
		PromptTokens:     raw.PromptTokens,
		CompletionTokens: raw.CompletionTokens,
		TotalTokens:      raw.TotalTokens,
	}
	if raw.CompletionTokensDetails != nil {
		u.ReasoningTokens = raw.CompletionTokensDetails.ReasoningTokens
	}
	return u
}

// extractCitations keeps url_citation annotations in payload order and
// drops everything else.
func extractCitations(anns []annotation) []Citation {
	citations := []Citation{}
	for _, a := range anns {
		if a.Type != "url_citation" {
			continue
		}
		citations = append(citations, Citation{
			URL:     a.URLCitation.URL,
			Title:   a.URLCitation.Title,
			Content: a.URLCitation.Content,
		})
	}
	return citations
}
