package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/atlashaul/portal/internal/shared/errors"
	"github.com/atlashaul/portal/pkg/logger"
)

const (
	requestTimeout = 30 * time.Second
	maxRetries     = 3
)

// Client is an HTTP client for the hub REST API
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a new hub API client
func NewClient(baseURL, apiKey string, log *logger.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: baseURL,
		logger:  log.WithField("component", "hub"),
	}
}

// SetBaseURL overrides the base URL (useful for testing)
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// doRequest performs an authenticated HTTP request with rate-limit retry.
// It retries up to maxRetries times with exponential backoff (1s, 2s, 4s) on
// 429 responses. Other failures are never retried here; that decision belongs
// to the caller.
func (c *Client) doRequest(ctx context.Context, method, reqURL string, params url.Values, body []byte, extra http.Header) ([]byte, error) {
	if len(params) > 0 {
		parsed, err := url.Parse(reqURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse URL: %w", err)
		}
		existing := parsed.Query()
		for k, vals := range params {
			for _, v := range vals {
				existing.Add(k, v)
			}
		}
		parsed.RawQuery = existing.Encode()
		reqURL = parsed.String()
	}

	backoff := time.Second
	for attempt := 0; attempt <= maxRetries; attempt++ {
		c.logger.Debug("API request", "method", method, "url", reqURL, "attempt", attempt)
		attemptStart := time.Now()

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, vals := range extra {
			for _, v := range vals {
				req.Header.Set(k, v)
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, apperrors.Upstream("", fmt.Errorf("failed to execute request: %w", err))
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, apperrors.Upstream("", fmt.Errorf("failed to read response body: %w", readErr))
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			c.logger.Debug("API response", "status_code", resp.StatusCode, "duration_ms", time.Since(attemptStart).Milliseconds())
			return respBody, nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt == maxRetries {
				c.logger.Error("rate limit exhausted", "attempts", maxRetries+1)
				return nil, apperrors.RateLimited("hub API rate limit exceeded after retries")
			}
			c.logger.Warn("rate limited, retrying", "attempt", attempt, "backoff_ms", backoff.Milliseconds())
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
				continue
			}
		}

		c.logger.Error("API error", "status_code", resp.StatusCode)
		var envelope errorEnvelope
		_ = json.Unmarshal(respBody, &envelope)
		return nil, apperrors.Upstream(envelope.text(), fmt.Errorf("hub API: status %d", resp.StatusCode))
	}

	// Should not be reached, but guard against it
	return nil, apperrors.Upstream("", fmt.Errorf("hub API: exhausted retries"))
}

// GetWallet fetches a member's balance and raw transaction feed
func (c *Client) GetWallet(ctx context.Context, memberID uuid.UUID) (*WalletPayload, error) {
	reqURL := fmt.Sprintf("%s/v1/members/%s/wallet", c.baseURL, memberID)

	body, err := c.doRequest(ctx, http.MethodGet, reqURL, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("GetWallet failed: %w", err)
	}

	var payload WalletPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperrors.Upstream("", fmt.Errorf("failed to decode wallet response: %w", err))
	}

	c.logger.Info("wallet fetched", "member_id", memberID, "transactions", len(payload.Transactions))
	return &payload, nil
}

// SubmitPurchase posts a wallet purchase. The idempotency key travels both in
// the body and the Idempotency-Key header so the hub can deduplicate retried
// submissions.
func (c *Client) SubmitPurchase(ctx context.Context, memberID uuid.UUID, req purchaseBody) error {
	reqURL := fmt.Sprintf("%s/v1/members/%s/wallet/purchases", c.baseURL, memberID)

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode purchase: %w", err)
	}

	headers := http.Header{}
	headers.Set("Idempotency-Key", req.IdempotencyKey)

	if _, err := c.doRequest(ctx, http.MethodPost, reqURL, nil, body, headers); err != nil {
		return fmt.Errorf("SubmitPurchase failed: %w", err)
	}
	return nil
}

// ListEvents fetches all published events. It handles pagination by following
// the absolute Links.Next URL.
func (c *Client) ListEvents(ctx context.Context) ([]EventPayload, error) {
	fetchStart := time.Now()
	reqURL := fmt.Sprintf("%s/v1/events", c.baseURL)

	var all []EventPayload

	for {
		body, err := c.doRequest(ctx, http.MethodGet, reqURL, nil, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("ListEvents failed: %w", err)
		}

		var resp EventsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, apperrors.Upstream("", fmt.Errorf("failed to decode events response: %w", err))
		}

		all = append(all, resp.Data...)

		if resp.Links.Next == "" {
			break
		}

		// Links.Next is an absolute URL, use it directly
		reqURL = resp.Links.Next
	}

	c.logger.Info("events fetched", "count", len(all), "duration_ms", time.Since(fetchStart).Milliseconds())
	return all, nil
}

// SubmitInvite posts an invitation application
func (c *Client) SubmitInvite(ctx context.Context, req inviteBody) error {
	reqURL := fmt.Sprintf("%s/v1/invites", c.baseURL)

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode invite: %w", err)
	}

	if _, err := c.doRequest(ctx, http.MethodPost, reqURL, nil, body, nil); err != nil {
		return fmt.Errorf("SubmitInvite failed: %w", err)
	}
	return nil
}
