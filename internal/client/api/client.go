// Package api implements the HTTP client for the server: bearer-token
// attachment, refresh-cookie transport through a cookie jar, and transparent
// session recovery with a single-flight refresh shared by concurrent callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/wenotes/internal/common"
)

const apiPrefix = "/api/v1"

// refreshKey keys the singleflight group: there is only ever one session, so
// every waiter shares the same in-flight refresh.
const refreshKey = "refresh"

// Client is the authenticated HTTP client. The refresh token lives in the
// cookie jar as an httpOnly cookie and is never read by this code; the access
// token is cached in memory and attached just before transmission.
type Client struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string

	refreshGroup singleflight.Group
}

// NewClient constructs a Client for the given base URL (scheme://host:port).
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar init error: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
	}, nil
}

// SetAccessToken caches the access token attached to subsequent requests.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

// ClearAccessToken drops the cached token, e.g. after logout.
func (c *Client) ClearAccessToken() {
	c.SetAccessToken("")
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// isAuthPath reports whether path belongs to the session lifecycle endpoints.
// Requests to these never trigger recovery; a refresh that itself got a 401
// must not recurse.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/")
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Do performs one API request. body (if non-nil) is JSON-encoded; on a 2xx
// response the envelope's data is decoded into out (if non-nil).
//
// On a 401 from a non-auth endpoint the client refreshes the session once —
// concurrent callers share a single refresh — and retries the original
// request exactly once. A second 401 is terminal.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	resp, raw, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(path) {
		if err := c.refreshSession(ctx); err != nil {
			return err
		}
		// retried at most once; another 401 falls through to the error path
		resp, raw, err = c.send(ctx, method, path, body)
		if err != nil {
			return err
		}
	}

	return decodeResponse(resp, raw, out)
}

// send builds, authorizes, and executes a single HTTP request.
func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("request encode error: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return nil, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// attach the freshest token right before transmission, so requests queued
	// behind a refresh pick up the rotated one
	if token := c.currentToken(); token != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, raw, nil
}

// refreshSession redeems the cookie-borne refresh token for a new access
// token. All concurrent callers share one in-flight attempt and resume with
// its outcome. Any failure, transport ones included, clears the cached token:
// it has already been rejected once and must not be reused.
func (c *Client) refreshSession(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do(refreshKey, func() (any, error) {
		resp, raw, err := c.send(ctx, http.MethodGet, "/auth/refresh", nil)
		if err != nil {
			// the cached token was already rejected once; a refresh that dies
			// in transit must not leave it behind for the next caller
			c.ClearAccessToken()
			return nil, err
		}

		var payload struct {
			AccessToken string `json:"accessToken"`
		}
		if err := decodeResponse(resp, raw, &payload); err != nil {
			c.ClearAccessToken()
			return nil, ErrUnauthorized
		}

		c.SetAccessToken(payload.AccessToken)
		return nil, nil
	})
	return err
}

// UploadTo PUTs raw bytes to a presigned object-storage URL. The URL is
// absolute and pre-authorized, so no bearer token and no envelope apply.
func (c *Client) UploadTo(ctx context.Context, url string, data []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: "upload failed"}
	}
	return nil
}

// decodeResponse unwraps the envelope and maps failure statuses onto errors.
func decodeResponse(resp *http.Response, raw []byte, out any) error {
	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("response decode error: %w", err)
		}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(env.Data) > 0 {
			return json.Unmarshal(env.Data, out)
		}
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return &APIError{Status: resp.StatusCode, Message: env.Message}
}
