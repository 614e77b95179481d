// Package gemini provides a generation service adapter for the Gemini API.
//
// The adapter wraps every generation call in a bounded retry policy:
// rate-limit and temporary-unavailability failures are retried with
// exponential backoff, anything else propagates immediately. After the
// retry attempts are spent the last failure is returned to the caller; the
// answering engine decides what to do with it.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/csec-astu/astu-assist/internal/core/domain"
	"github.com/csec-astu/astu-assist/internal/core/ports/driven"
	"github.com/csec-astu/astu-assist/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.GenerationService = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-flash-latest"
	DefaultTimeout = 120 * time.Second

	// ProactiveRate throttles outgoing requests ahead of the server's
	// own rate limiting (free-tier Gemini quotas are per-minute).
	ProactiveRate = 0.5
)

// Retry policy: 3 total attempts, waits of min(5s, 2s·2^(n-1)) between them.
const (
	maxAttempts = 3
	backoffBase = 2 * time.Second
	backoffCap  = 5 * time.Second
)

// Config holds configuration for the Gemini client.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL is the API base URL. Overridable for tests and proxies.
	BaseURL string

	// Model is the generation model to use (default: gemini-flash-latest).
	Model string

	// Timeout is the per-request timeout (default: 120s).
	Timeout time.Duration
}

// Client calls the Gemini generateContent endpoint.
// It is stateless beyond the HTTP client and safe for concurrent use.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	limiter *rate.Limiter

	// sleep is swapped out in tests so backoff does not slow them down.
	sleep func(time.Duration)
}

// generateRequest is the generateContent request format.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// generateResponse is the generateContent response format.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *apiError `json:"error,omitempty"`
}

// apiError is the Gemini error payload.
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// NewClient creates a new Gemini client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Limit(ProactiveRate), 1),
		sleep:   time.Sleep,
	}, nil
}

// Generate produces text for the given prompt, retrying transient failures.
func (c *Client) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := c.generateOnce(ctx, prompt, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !isRetryable(err) {
			logger.Debug("Generation failed with non-retryable error: %v", err)
			return "", err
		}
		if attempt == maxAttempts {
			break
		}

		wait := backoff(attempt)
		logger.Warn("Generation attempt %d/%d failed (%v), retrying in %s", attempt, maxAttempts, err, wait)
		c.sleep(wait)
	}

	return "", lastErr
}

// generateOnce performs a single generateContent call.
func (c *Client) generateOnce(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	jsonBody, err := json.Marshal(generateRequest{
		Contents: []content{
			{Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			Temperature:     opts.Temperature,
			TopP:            opts.TopP,
			MaxOutputTokens: opts.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// The error payload is JSON when it comes from the API itself,
		// but proxies can return anything.
		var failure generateResponse
		_ = json.Unmarshal(body, &failure)
		return "", classifyFailure(resp.StatusCode, failure.Error, body)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: response contains no candidates")
	}

	var b strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

// classifyFailure maps an HTTP failure to a typed error kind so that callers
// can discriminate with errors.Is instead of parsing messages.
func classifyFailure(statusCode int, apiErr *apiError, body []byte) error {
	message := string(body)
	status := ""
	if apiErr != nil {
		message = apiErr.Message
		status = apiErr.Status
	}

	switch {
	case statusCode == http.StatusTooManyRequests || status == "RESOURCE_EXHAUSTED":
		return fmt.Errorf("%w: %s", domain.ErrGenerationExhausted, message)
	case statusCode == http.StatusServiceUnavailable || status == "UNAVAILABLE":
		return fmt.Errorf("%w: %s", domain.ErrGenerationUnavailable, message)
	default:
		return fmt.Errorf("gemini: status %d: %s", statusCode, message)
	}
}

// isRetryable reports whether an error is one of the transient kinds.
func isRetryable(err error) bool {
	return errors.Is(err, domain.ErrGenerationExhausted) ||
		errors.Is(err, domain.ErrGenerationUnavailable)
}

// backoff returns the wait before the next attempt: 2s, 4s, ... capped at 5s.
func backoff(attempt int) time.Duration {
	wait := backoffBase << (attempt - 1)
	if wait > backoffCap {
		wait = backoffCap
	}
	return wait
}

// ModelName returns the name of the generation model being used.
func (c *Client) ModelName() string {
	return c.model
}

// Close releases resources.
func (c *Client) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
