// Package clients wraps the e-commerce backend REST API. All responses are
// translated uniformly: 204 yields no body, 401 tears the session down
// through a hook, and every other non-2xx becomes an *APIError carrying the
// backend's message.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// TokenSource yields the current bearer token, or "" when unauthenticated.
type TokenSource interface {
	Token() string
}

// APIError is a backend failure with the HTTP status and the message
// extracted from the response body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

func apiStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == status
}

// IsNotFound reports whether err is a backend 404. Checkout treats it as a
// positive signal during customer lookup.
func IsNotFound(err error) bool { return apiStatus(err, http.StatusNotFound) }

// IsForbidden reports whether err is a backend 403; the session is retained.
func IsForbidden(err error) bool { return apiStatus(err, http.StatusForbidden) }

// IsUnauthorized reports whether err is a backend 401; the session has
// already been cleared by the time callers see this.
func IsUnauthorized(err error) bool { return apiStatus(err, http.StatusUnauthorized) }

// BackendClient is a typed HTTP client for the backend API.
type BackendClient struct {
	baseURL        string
	client         *http.Client
	tokens         TokenSource
	logger         *zap.Logger
	onUnauthorized func()
}

func NewBackendClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *BackendClient {
	return &BackendClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// OnUnauthorized registers the hook invoked on any 401 response, typically
// the session teardown.
func (b *BackendClient) OnUnauthorized(fn func()) {
	b.onUnauthorized = fn
}

// do performs a request against the backend. A bearer header is attached
// when a token is available; the request is sent unchanged otherwise. When
// out is non-nil the 2xx response body is decoded into it.
func (b *BackendClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := b.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := b.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.Error("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	if err := b.checkStatus(resp, method, path); err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		b.logger.Error("backend response decode failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (b *BackendClient) checkStatus(resp *http.Response, method, path string) error {
	if resp.StatusCode < 400 {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Message = "unauthorized access"
		if b.onUnauthorized != nil {
			b.onUnauthorized()
		}
	case http.StatusForbidden:
		apiErr.Message = "access forbidden"
	default:
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = fmt.Sprintf("http error: status %d", resp.StatusCode)
		}
	}

	b.logger.Warn("backend returned error",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", apiErr.Message),
	)
	return apiErr
}

// listQuery builds the shared page/size pagination values.
func listQuery(page, size int) url.Values {
	q := url.Values{}
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	q.Set("page", fmt.Sprint(page))
	q.Set("size", fmt.Sprint(size))
	return q
}
