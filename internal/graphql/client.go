// Package graphql is a minimal GraphQL-over-HTTP client: one POST per
// operation, JSON in and out, no batching, no cache, no retries.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"phonebook/internal/logging"

	"github.com/google/uuid"
)

// Request is a single GraphQL operation.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// response is the standard GraphQL response envelope.
type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorEntry    `json:"errors"`
}

// Config configures a Client.
type Config struct {
	Endpoint  string
	Timeout   time.Duration
	AuthToken string
}

// Client sends GraphQL operations to one endpoint.
type Client struct {
	endpoint   string
	authToken  string
	httpClient *http.Client
}

// NewClient creates a client for the endpoint with the given config.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:  cfg.Endpoint,
		authToken: cfg.AuthToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do executes req and decodes the data member into out (which may be nil).
// Server-reported GraphQL errors are returned as *Error, even alongside data.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	requestID := uuid.NewString()
	log := logging.Get(logging.CategoryAPI).With("request_id", requestID, "operation", req.OperationName)
	timer := logging.StartTimer(logging.CategoryAPI, "graphql "+req.OperationName)
	defer timer.StopWithThreshold(2 * time.Second)

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.authToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	log.Debug("sending %d bytes to %s", len(body), c.endpoint)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Error("request failed: %v", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope response
	decodeErr := json.Unmarshal(respBody, &envelope)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && len(envelope.Errors) > 0 {
			log.Warn("status %d with %d graphql errors", resp.StatusCode, len(envelope.Errors))
			return &Error{StatusCode: resp.StatusCode, Errors: envelope.Errors}
		}
		log.Error("unexpected status %d", resp.StatusCode)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if decodeErr != nil {
		return fmt.Errorf("failed to parse response: %w", decodeErr)
	}

	if len(envelope.Errors) > 0 {
		log.Warn("%d graphql errors: %s", len(envelope.Errors), envelope.Errors[0].Message)
		return &Error{StatusCode: resp.StatusCode, Errors: envelope.Errors}
	}

	if out == nil {
		return nil
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("response carried no data")
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}
