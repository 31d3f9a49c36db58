package openrouter

import (
	"fmt"
	"strings"
)

// EncodeAttachments weaves uploaded files into the last user message,
// turning its plain-string content into an ordered fragment list: the
// original text first, then one fragment per file. Images become image
// references; everything else becomes an inline text fragment carrying
// whatever text was extracted server-side.
//
// The input slice is not mutated; a transformed copy is returned. When
// the history has no user message the copy is returned unchanged.
func EncodeAttachments(messages []Message, files []Attachment) []Message {
	out := make([]Message, len(messages))
	copy(out, messages)

	if len(files) == 0 {
		return out
	}

	last := -1
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Role == "user" {
			last = i
			break
		}
	}
	if last == -1 {
		return out
	}

	text, ok := out[last].Content.(string)
	if !ok {
		// Already fragment-shaped, leave it alone.
		return out
	}

	parts := make([]ContentPart, 0, len(files)+1)
	parts = append(parts, ContentPart{Type: "text", Text: text})

	for _, f := range files {
		if strings.HasPrefix(f.MimeType, "image/") {
			parts = append(parts, ContentPart{
				Type:     "image_url",
				ImageURL: &ImageRef{URL: f.URL},
			})
			continue
		}
		parts = append(parts, ContentPart{
			Type: "text",
			Text: fmt.Sprintf("[Attached file: %s]\n%s", f.Name, f.Content),
		})
	}

	out[last] = Message{Role: out[last].Role, Content: parts}
	return out
}
