package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"campaign-engine/internal/observability"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Rendered is the output of the rendering service.
type Rendered struct {
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

type renderRequest struct {
	TemplateID string            `json:"template_id"`
	Variables  map[string]string `json:"variables"`
}

// Client calls the content rendering service
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *observability.Logger
}

// NewClient creates a new rendering service client
func NewClient(baseURL string, timeout time.Duration, logger *observability.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Render renders a template with the given variables
func (c *Client) Render(ctx context.Context, templateID string, variables map[string]string) (Rendered, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "template_id", Value: templateID})

	payload, err := json.Marshal(renderRequest{TemplateID: templateID, Variables: variables})
	if err != nil {
		return Rendered{}, fmt.Errorf("failed to marshal render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewReader(payload))
	if err != nil {
		return Rendered{}, fmt.Errorf("failed to create render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "failed to call renderer", err)
		return Rendered{}, fmt.Errorf("failed to call renderer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("renderer returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		c.logger.Error(ctx, "render request failed", err)
		return Rendered{}, err
	}

	var out Rendered
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Rendered{}, fmt.Errorf("failed to decode render response: %w", err)
	}
	return out, nil
}

// Renderer is anything that can render a template.
type Renderer interface {
	Render(ctx context.Context, templateID string, variables map[string]string) (Rendered, error)
}

// Cache memoizes renders under a caller supplied key, e.g. content id,
// version and variant.
type Cache struct {
	renderer Renderer
	entries  *lru.Cache[string, Rendered]
}

func NewCache(renderer Renderer, size int) (*Cache, error) {
	entries, err := lru.New[string, Rendered](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create render cache: %w", err)
	}
	return &Cache{renderer: renderer, entries: entries}, nil
}

// Render returns the cached render for key, rendering on a miss. Failed
// renders are not cached.
func (c *Cache) Render(ctx context.Context, key, templateID string, variables map[string]string) (Rendered, error) {
	if r, ok := c.entries.Get(key); ok {
		return r, nil
	}
	r, err := c.renderer.Render(ctx, templateID, variables)
	if err != nil {
		return Rendered{}, err
	}
	c.entries.Add(key, r)
	return r, nil
}

func (c *Cache) Len() int {
	return c.entries.Len()
}
