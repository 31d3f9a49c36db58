package openrouter

import "testing"

func TestEncodeAttachments_ImageAndDocument(t *testing.T) {
	messages := []Message{
		{Role: "assistant", Content: "How can I help?"},
		{Role: "user", Content: "Look at these"},
	}
	files := []Attachment{
		{Name: "chart.png", MimeType: "image/png", URL: "https://cdn.example/chart.png"},
		{Name: "report.pdf", MimeType: "application/pdf", URL: "https://cdn.example/report.pdf", Content: "Q3 revenue grew"},
	}

	out := EncodeAttachments(messages, files)

	parts, ok := out[1].Content.([]ContentPart)
	if !ok {
		t.Fatalf("expected fragment list, got %T", out[1].Content)
	}
	if len(parts) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(parts))
	}
	if parts[0].Type != "text" || parts[0].Text != "Look at these" {
		t.Errorf("first fragment = %+v, want original text", parts[0])
	}
	if parts[1].Type != "image_url" || parts[1].ImageURL == nil || parts[1].ImageURL.URL != "https://cdn.example/chart.png" {
		t.Errorf("image fragment = %+v", parts[1])
	}
	if parts[2].Type != "text" || parts[2].Text != "[Attached file: report.pdf]\nQ3 revenue grew" {
		t.Errorf("file fragment text = %q", parts[2].Text)
	}
}

func TestEncodeAttachments_TargetsLastUserMessage(t *testing.T) {
	messages := []Message{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "reply"},
		{Role: "user", Content: "second"},
	}
	files := []Attachment{{Name: "a.txt", MimeType: "text/plain", Content: "hello"}}

	out := EncodeAttachments(messages, files)

	if _, ok := out[0].Content.(string); !ok {
		t.Error("first user message should be untouched")
	}
	if _, ok := out[2].Content.([]ContentPart); !ok {
		t.Error("last user message should carry the fragments")
	}
}

func TestEncodeAttachments_NoUserMessage(t *testing.T) {
	messages := []Message{{Role: "assistant", Content: "hello"}}
	files := []Attachment{{Name: "a.txt", MimeType: "text/plain"}}

	out := EncodeAttachments(messages, files)

	if len(out) != 1 {
		t.Fatalf("expected 1 message, got %d", len(out))
	}
	if out[0].Content != "hello" {
		t.Errorf("message should pass through unchanged, got %v", out[0].Content)
	}
}

func TestEncodeAttachments_DoesNotMutateInput(t *testing.T) {
	messages := []Message{{Role: "user", Content: "hi"}}
	files := []Attachment{{Name: "a.txt", MimeType: "text/plain"}}

	_ = EncodeAttachments(messages, files)

	if messages[0].Content != "hi" {
		t.Errorf("input mutated: %v", messages[0].Content)
	}
}

func TestEncodeAttachments_MissingExtractedContent(t *testing.T) {
	messages := []Message{{Role: "user", Content: "see file"}}
	files := []Attachment{{Name: "scan.pdf", MimeType: "application/pdf"}}

	out := EncodeAttachments(messages, files)

	parts := out[0].Content.([]ContentPart)
	if parts[1].Text != "[Attached file: scan.pdf]\n" {
		t.Errorf("fragment = %q, want empty content after header", parts[1].Text)
	}
}
