package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client talks to the provider API. It lives server-side only: the API
// key must never reach presentation code.
type Client struct {
	apiKey   string
	baseURL  string
	client   *http.Client
	logger   *slog.Logger
	cacheTTL time.Duration

	mu          sync.RWMutex
	catalog     []Model
	catalogTime time.Time
}

func NewClient(apiKey string, logger *slog.Logger) *Client {
	return &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: 120 * time.Second},
		logger:   logger,
		cacheTTL: 5 * time.Minute,
	}
}

// SetTestTransport points the client at a test server.
func (c *Client) SetTestTransport(baseURL string) {
	c.baseURL = baseURL
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one chat-completion request and returns the parsed
// completion. Transport and provider failures are surfaced verbatim; no
// retry is attempted here.
func (c *Client) Complete(ctx context.Context, reqBody *Request) (*Completion, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("api error %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("api error %d: %s", resp.StatusCode, string(respBody))
	}

	var raw apiResponse
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	completion, err := ParseResponse(&raw)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("completion received",
		"model", completion.Model,
		"finish_reason", completion.FinishReason,
		"citations", len(completion.Citations),
	)
	return completion, nil
}

type catalogResponse struct {
	Data []Model `json:"data"`
}

// ListModels fetches the public model catalog. The endpoint needs no
// credential; results are cached for a short TTL since the catalog
// changes rarely and the UI polls it often.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	c.mu.RLock()
	if c.catalog != nil && time.Since(c.catalogTime) < c.cacheTTL {
		cached := c.catalog
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model catalog error %d", resp.StatusCode)
	}

	var catalog catalogResponse
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decode model catalog: %w", err)
	}

	c.mu.Lock()
	c.catalog = catalog.Data
	c.catalogTime = time.Now()
	c.mu.Unlock()

	c.logger.Debug("model catalog refreshed", "models", len(catalog.Data))
	return catalog.Data, nil
}
