package dao

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is a non-2xx answer of the remote API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote api %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// Client talks to the remote system of record. A Client is safe for concurrent use;
// WithToken derives a client bound to one user's bearer token.
type Client struct {
	HTTP    *http.Client
	BaseURL string

	token string
}

func NewClient(baseURL string, connectTimeout, callTimeout time.Duration) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: connectTimeout}).DialContext

	return &Client{
		HTTP:    &http.Client{Timeout: callTimeout, Transport: transport},
		BaseURL: baseURL,
	}
}

func (c *Client) WithToken(token string) *Client {
	return &Client{
		HTTP:    c.HTTP,
		BaseURL: c.BaseURL,
		token:   token,
	}
}

func (c *Client) Token() string {
	return c.token
}

// Origin is the base URL without a trailing slash, used to resolve relative image paths.
func (c *Client) Origin() string {
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *Client) url(path string) string {
	return c.Origin() + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal -> %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		zap.L().Debug("remote call failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return fmt.Errorf("c.HTTP.Do -> %w", err)
	}
	defer res.Body.Close()

	zap.L().Debug("remote call",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", res.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeAPIError(res)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err = json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("json.Decode -> %w", err)
	}

	return nil
}

func decodeAPIError(res *http.Response) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	_ = json.Unmarshal(raw, &body)

	msg := body.Message
	if msg == "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(res.StatusCode)
	}

	return &APIError{StatusCode: res.StatusCode, Message: msg}
}
