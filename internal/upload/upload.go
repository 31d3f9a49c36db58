// Package upload fans out attachment uploads and best-effort text
// extraction across a batch of selected files.
package upload

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gavasques/viralzera-sub001/internal/openrouter"
)

// Uploader is the external transport that stores a file and, for
// non-image types, extracts its text server-side.
type Uploader interface {
	Upload(ctx context.Context, name, mimeType string, data []byte) (url string, err error)
	ExtractText(ctx context.Context, url, mimeType string) (string, error)
}

// File is one locally selected file awaiting upload.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// Batch uploads all files concurrently and waits for the whole batch.
// A failed upload fails the batch; a failed text extraction only
// degrades that one file to "no extracted content". Result order
// matches input order.
func Batch(ctx context.Context, up Uploader, files []File, logger *slog.Logger) ([]openrouter.Attachment, error) {
	attachments := make([]openrouter.Attachment, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()

			url, err := up.Upload(ctx, f.Name, f.MimeType, f.Data)
			if err != nil {
				errs[i] = fmt.Errorf("upload %s: %w", f.Name, err)
				return
			}

			att := openrouter.Attachment{
				Name:     f.Name,
				MimeType: f.MimeType,
				URL:      url,
				Size:     int64(len(f.Data)),
			}

			if !strings.HasPrefix(f.MimeType, "image/") {
				text, err := up.ExtractText(ctx, url, f.MimeType)
				if err != nil {
					logger.Warn("text extraction failed, attaching without content",
						"file", f.Name, "error", err)
				} else {
					att.Content = text
				}
			}

			attachments[i] = att
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return attachments, nil
}
