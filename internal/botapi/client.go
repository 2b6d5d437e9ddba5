// Package botapi implements the outbound Telegram Bot API client bizhookd
// uses: request signing, rate limiting, retry on throttling, and decoding of
// responses into typed entities.
package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/botwire/botwire/telegram"
)

const defaultBaseURL = "https://api.telegram.org"

// APIError represents an error response from the Bot API.
type APIError struct {
	Code        int
	Description string
	RetryAfter  time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bot api error %d: %s", e.Code, e.Description)
}

// Client talks to the Bot API on behalf of one bot token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	dec        *telegram.Decoder
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API server, e.g. a local Bot
// API instance or a test server.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithTimeout bounds each HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithRateLimit caps the sustained request rate with a burst allowance.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst) }
}

// WithRetries sets how often throttled or failed requests are retried.
func WithRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithDecoder installs the decoder responses are parsed with.
func WithDecoder(dec *telegram.Decoder) Option {
	return func(c *Client) { c.dec = dec }
}

// WithLogger installs a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger.With("component", "botapi") }
}

// New creates a Bot API client for the given token.
func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	c := &Client{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(25), 5),
		maxRetries: 3,
		dec:        telegram.NewDecoder(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetMe fetches the bot's own user object, a cheap way to validate the token.
func (c *Client) GetMe(ctx context.Context) (*telegram.User, error) {
	result, err := c.call(ctx, "getMe", nil)
	if err != nil {
		return nil, err
	}
	return c.dec.User(result)
}

// GetBusinessConnection fetches the current state of a business connection.
func (c *Client) GetBusinessConnection(ctx context.Context, connectionID string) (*telegram.BusinessConnection, error) {
	payload := map[string]any{"business_connection_id": connectionID}
	result, err := c.call(ctx, "getBusinessConnection", payload)
	if err != nil {
		return nil, err
	}
	return c.dec.BusinessConnection(result)
}

// AnswerInlineQueryOpts holds the optional answerInlineQuery parameters.
type AnswerInlineQueryOpts struct {
	CacheTime  int
	IsPersonal bool
	NextOffset string
}

// AnswerInlineQuery sends results for an inline query. opts may be nil.
func (c *Client) AnswerInlineQuery(ctx context.Context, inlineQueryID string, results []telegram.InlineQueryResult, opts *AnswerInlineQueryOpts) error {
	payload := map[string]any{
		"inline_query_id": inlineQueryID,
		"results":         results,
	}
	if opts != nil {
		if opts.CacheTime > 0 {
			payload["cache_time"] = opts.CacheTime
		}
		if opts.IsPersonal {
			payload["is_personal"] = true
		}
		if opts.NextOffset != "" {
			payload["next_offset"] = opts.NextOffset
		}
	}
	_, err := c.call(ctx, "answerInlineQuery", payload)
	return err
}

// apiResponse is the Bot API response envelope.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
	ErrorCode   int             `json:"error_code"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

// call performs one Bot API method call, retrying throttled and server-side
// failures with backoff.
func (c *Client) call(ctx context.Context, method string, payload any) (json.RawMessage, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		result, retryIn, err := c.doRequest(ctx, method, payload)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if retryIn < 0 {
			return nil, err
		}
		if attempt == c.maxRetries {
			break
		}
		if retryIn == 0 {
			// Exponential backoff when the API gave no hint.
			retryIn = time.Duration(1<<attempt) * time.Second
		}

		c.logger.Warn("bot api call failed, retrying",
			"method", method, "attempt", attempt+1, "retry_in", retryIn, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryIn):
		}
	}
	return nil, fmt.Errorf("%s failed after %d attempts: %w", method, c.maxRetries+1, lastErr)
}

// doRequest runs a single request. The returned duration is how long to wait
// before retrying: negative means the error is permanent, zero means retry
// with default backoff.
func (c *Client) doRequest(ctx context.Context, method string, payload any) (json.RawMessage, time.Duration, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, -1, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, -1, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport errors are worth a retry.
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, -1, fmt.Errorf("failed to decode response: %w", err)
	}

	if envelope.OK {
		return envelope.Result, 0, nil
	}

	apiErr := &APIError{Code: envelope.ErrorCode, Description: envelope.Description}
	if envelope.Parameters != nil && envelope.Parameters.RetryAfter > 0 {
		apiErr.RetryAfter = time.Duration(envelope.Parameters.RetryAfter) * time.Second
	}

	switch {
	case envelope.ErrorCode == http.StatusTooManyRequests:
		return nil, apiErr.RetryAfter, apiErr
	case envelope.ErrorCode >= http.StatusInternalServerError:
		return nil, 0, apiErr
	default:
		return nil, -1, apiErr
	}
}
