package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ftms-portal/internal/adapters/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default message used when the server did not provide a parseable
// error body.
const genericErrorMessage = "An error occurred"

// APIError is the single failure shape raised by the gateway. Status
// is the HTTP status code, or 0 when no response reached the client
// at all.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// IsUnauthorized reports whether err is an APIError with status 401
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// errorBody is the error response shape used by the portal API
type errorBody struct {
	Error string `json:"error"`
}

// Gateway builds authenticated requests against the portal API and
// normalizes failures into APIError values. It never retries and
// enforces no timeout of its own; timeout policy belongs to the
// injected http.Client.
type Gateway struct {
	baseURL string
	client  *http.Client
	tokens  storage.TokenStore
	log     *zap.Logger
}

// NewGateway creates a gateway rooted at baseURL. A nil client falls
// back to http.DefaultClient.
func NewGateway(baseURL string, client *http.Client, tokens storage.TokenStore, log *zap.Logger) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{
		baseURL: baseURL,
		client:  client,
		tokens:  tokens,
		log:     log,
	}
}

// Do performs a single JSON request against endpoint and decodes the
// response into out when out is non-nil.
//
// The bearer token is read fresh from the token store on every call
// and attached only when present. A 401 response clears the persisted
// token as a side effect before the error is returned; clearing the
// in-memory session is the caller's responsibility.
func (g *Gateway) Do(ctx context.Context, method, endpoint string, body, out any) error {
	requestID := uuid.New().String()
	start := time.Now()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	token, err := g.tokens.Get()
	if err != nil {
		g.log.Warn("failed to read stored token", zap.Error(err))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Warn("request failed before a response arrived",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return &APIError{Status: 0, Message: "Network error"}
	}
	defer resp.Body.Close()

	g.log.Debug("request completed",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return g.handleErrorResponse(resp, requestID)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

func (g *Gateway) handleErrorResponse(resp *http.Response, requestID string) error {
	message := genericErrorMessage
	var eb errorBody
	if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Error != "" {
		message = eb.Error
	}

	// Any 401 invalidates the persisted token, whatever endpoint was
	// called. In-memory user state is left to the session layer.
	if resp.StatusCode == http.StatusUnauthorized {
		if err := g.tokens.Clear(); err != nil {
			g.log.Warn("failed to clear stored token after 401",
				zap.String("request_id", requestID),
				zap.Error(err))
		}
	}

	return &APIError{Status: resp.StatusCode, Message: message}
}
