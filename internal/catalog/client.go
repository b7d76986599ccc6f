package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"pricewatch-engine/internal/domain"
)

// Client fetches the model catalog from an OpenRouter-style pricing API.
// A failed fetch is fatal for that load: no retry, no partial result.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *HostLimiter

	// APIKey returns the bearer token, empty when the endpoint is public.
	APIKey func() (string, error)

	sf singleflight.Group
}

type modelsResponse struct {
	Data []domain.Model `json:"data"`
}

func NewClient(baseURL string, timeout time.Duration, limiter *HostLimiter) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
	}
}

// FetchModels returns the raw catalog in API order. Concurrent callers
// collapse onto a single in-flight request.
func (c *Client) FetchModels(ctx context.Context) ([]domain.Model, error) {
	v, err, _ := c.sf.Do("models", func() (any, error) {
		return c.fetchModels(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Model), nil
}

func (c *Client) fetchModels(ctx context.Context) ([]domain.Model, error) {
	u := c.baseURL + "/models"

	if err := c.limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	if c.APIKey != nil {
		key, err := c.APIKey()
		if err == nil && strings.TrimSpace(key) != "" {
			req.Header.Set("Authorization", "Bearer "+key)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pricing api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("pricing api: status=%d body=%s", resp.StatusCode, string(body))
	}

	var payload modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("pricing api: decode: %w", err)
	}
	return payload.Data, nil
}
