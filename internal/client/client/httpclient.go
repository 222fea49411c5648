package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gymbacteria/internal/client/models"
	"github.com/dmitrijs2005/gymbacteria/internal/common"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of a non-2xx response body is read.
const maxErrorBody = 4 << 10

// HTTPClient talks to the training API over HTTP/JSON.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	newID   func() string
}

// NewHTTPClient returns a client for the API rooted at baseURL. timeout
// bounds every request; zero means no client-side deadline.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parse base url: %q is not absolute", baseURL)
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		newID:   uuid.NewString,
	}, nil
}

// errorBody is the API's error envelope.
type errorBody struct {
	Error string `json:"error"`
}

func (c *HTTPClient) GetUser(ctx context.Context, accessKey string) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(accessKey), nil, http.StatusOK, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, nickname string, accessKey string) (*models.User, error) {
	body := map[string]string{"nickname": nickname, "access_key": accessKey}

	var u models.User
	if err := c.do(ctx, http.MethodPost, "/api/users", body, http.StatusCreated, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, accessKey string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+url.PathEscape(accessKey), nil, http.StatusNoContent, nil)
}

func (c *HTTPClient) Ping(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, http.StatusOK, &h); err != nil {
		return nil, err
	}
	if h.Status != "healthy" && h.Status != "OK" {
		return nil, fmt.Errorf("%w: status %q", ErrUnavailable, h.Status)
	}
	return &h, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, c.newID())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return mapStatus(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode body: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

func (c *HTTPClient) endpoint(path string) string {
	return strings.TrimRight(c.baseURL.String(), "/") + path
}

// mapStatus converts a non-expected HTTP status into a sentinel error,
// keeping the server's message when it sent one.
func mapStatus(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := resp.Status
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
		msg = eb.Error
	}

	var kind error
	switch {
	case resp.StatusCode == http.StatusNotFound:
		kind = ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		kind = ErrUnauthorized
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		kind = ErrUnavailable
	case resp.StatusCode >= 400:
		kind = ErrRejected
	default:
		kind = ErrUnexpectedResponse
	}
	return fmt.Errorf("%w: %s", kind, msg)
}
