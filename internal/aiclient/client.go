package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"complaint-backend/internal/apperr"
	"complaint-backend/internal/models"
)

// Client is a client for the external AI normalization service (FastAPI).
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryMax   int
	backoff    time.Duration
}

// AnalyzeRequest is the payload the AI service expects for normalization.
type AnalyzeRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	District string `json:"district"`
}

// SimilarRequest asks for complaints close to the given embedding.
type SimilarRequest struct {
	Embedding []float64 `json:"embedding"`
}

type similarResponse struct {
	Results []models.SimilarityCandidate `json:"results"`
}

// Option customises the client.
type Option func(*Client)

// WithTimeout sets the per-call HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRetry enables up to retries extra attempts with a linear backoff
// between them. Retries fire only on transport errors and 5xx responses;
// normalization is not guaranteed idempotent upstream, so keep this small.
func WithRetry(retries int, backoff time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retries
		c.backoff = backoff
	}
}

// NewClient creates a new AI service client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze sends one complaint to the normalization endpoint and returns the
// normalized text plus its embedding vector. Field values are passed through
// as-is; any non-success response surfaces as an upstream normalization
// failure carrying the endpoint and status.
func (c *Client) Analyze(ctx context.Context, title, body, district string) (*models.NormalizationResult, error) {
	reqBody := AnalyzeRequest{
		Title:    title,
		Body:     body,
		District: district,
	}

	var result models.NormalizationResult
	if err := c.postJSON(ctx, "/analyze", reqBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FindSimilar returns candidate complaints for the embedding, in the order the
// upstream produced them (assumed descending similarity). An empty embedding
// is a caller error.
func (c *Client) FindSimilar(ctx context.Context, embedding []float64) ([]models.SimilarityCandidate, error) {
	if len(embedding) == 0 {
		return nil, apperr.Wrap(apperr.ErrValidation, "empty embedding vector")
	}

	var result similarResponse
	if err := c.postJSON(ctx, "/similar", SimilarRequest{Embedding: embedding}, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

func (c *Client) postJSON(ctx context.Context, path string, reqBody, out any) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}

		retryable, err := c.doOnce(ctx, endpoint, jsonData, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return lastErr
}

// doOnce performs a single POST. The bool reports whether the failure is safe
// to retry.
func (c *Client) doOnce(ctx context.Context, endpoint string, jsonData []byte, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, apperr.Wrap(apperr.ErrUpstreamNormalization, "ai service unreachable at %s", endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		retryable := resp.StatusCode >= http.StatusInternalServerError
		return retryable, apperr.Wrap(apperr.ErrUpstreamNormalization,
			"ai service %s returned status %d: %s", endpoint, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	return false, nil
}
