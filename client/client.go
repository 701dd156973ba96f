// Package client provides a Go consumer of the feedback HTTP API and a sync
// controller that keeps a fetched listing current for presentation layers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pulseboard/pulseboard-backend/types"
)

const defaultTimeout = 10 * time.Second

// APIError is a failure reported by the server. Message carries the
// user-visible text from the failure envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is an HTTP client for the feedback API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the API at baseURL, e.g. "http://localhost:5001".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWithHTTPClient creates a Client using the supplied http.Client.
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListFeedback fetches all feedback entries, newest first.
func (c *Client) ListFeedback(ctx context.Context) ([]types.Feedback, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/feedback", nil)
	if err != nil {
		return nil, err
	}

	var entries []types.Feedback
	if err := json.Unmarshal(resp.rawData, &entries); err != nil {
		return nil, fmt.Errorf("decoding feedback listing: %w", err)
	}
	return entries, nil
}

// SubmitFeedback submits a new feedback entry and returns the stored record.
func (c *Client) SubmitFeedback(ctx context.Context, payload *types.FeedbackCreate) (*types.Feedback, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/feedback", payload)
	if err != nil {
		return nil, err
	}

	var entry types.Feedback
	if err := json.Unmarshal(resp.rawData, &entry); err != nil {
		return nil, fmt.Errorf("decoding feedback record: %w", err)
	}
	return &entry, nil
}

// Health checks that the server is reachable and reports itself up.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/health", nil)
	return err
}

type apiResult struct {
	message string
	rawData json.RawMessage
}

// do performs a request and maps any non-2xx response or transport failure to
// a single error.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*apiResult, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if decodeErr := json.Unmarshal(raw, &envelope); decodeErr != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, fmt.Errorf("decoding response: %w", decodeErr)
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Request failed with status %d", resp.StatusCode),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	return &apiResult{message: envelope.Message, rawData: envelope.Data}, nil
}
