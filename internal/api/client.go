package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/haven/internal/domain"
	"golang.org/x/sync/singleflight"
)

// TokenStore is the persisted credential set the client reads on every
// request. Implementations must write SaveSession atomically.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	SaveSession(ctx context.Context, session domain.AuthSession, user domain.User) error
	Clear(ctx context.Context) error
}

// Client talks to the companion REST API. It attaches the stored access
// token to each request and, on a 401, refreshes it once and replays the
// request.
type Client struct {
	cfg      Config
	http     *http.Client
	tokens   TokenStore
	observer Observer

	// refreshes collapses concurrent refresh attempts into one call.
	refreshes singleflight.Group
}

// NewClient creates a Client backed by the given token store.
func NewClient(cfg Config, tokens TokenStore, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		tokens:   tokens,
		observer: observer,
	}
}

// request describes one API call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any        // JSON-encoded when non-nil
	form   url.Values // form-encoded when non-nil

	// noRefresh keeps auth endpoints out of the refresh-and-replay flow:
	// a 401 there means bad credentials, not an expired token.
	noRefresh bool
}

type response struct {
	status int
	body   []byte
}

// do sends req, runs the 401 refresh-and-replay protocol, normalizes errors
// and decodes a 2xx body into out when out is non-nil.
func (c *Client) do(ctx context.Context, req request, out any) error {
	start := time.Now()

	resp, err := c.send(ctx, req)
	retried := false
	if err == nil && resp.status == http.StatusUnauthorized && !req.noRefresh {
		retried = true
		resp, err = c.replayAfterRefresh(ctx, req)
	}
	if err == nil && (resp.status < 200 || resp.status > 299) {
		err = statusError(resp.status, resp.body)
	}
	if err == nil && out != nil && len(bytes.TrimSpace(resp.body)) > 0 {
		if decErr := json.Unmarshal(resp.body, out); decErr != nil {
			err = fmt.Errorf("%w: decoding %s %s: %v", ErrInvalidResponse, req.method, req.path, decErr)
		}
	}

	status := 0
	if resp != nil {
		status = resp.status
	}
	c.observer.OnCallComplete(ctx, CallEvent{
		Method:    req.method,
		Path:      req.path,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Retried:   retried,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return err
}

// replayAfterRefresh handles a first 401: refresh the access token, then
// send the original request exactly once more.
func (c *Client) replayAfterRefresh(ctx context.Context, req request) (*response, error) {
	if err := c.refresh(ctx); err != nil {
		return nil, err
	}
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusUnauthorized {
		return nil, c.expire(ctx)
	}
	return resp, nil
}

// refresh exchanges the stored refresh token for a new access token. Any
// failure clears local credentials and yields ErrSessionExpired. The shared
// flight outlives any single caller: a caller whose ctx ends gets ctx.Err()
// while the others still receive the refresh result.
func (c *Client) refresh(ctx context.Context) error {
	flight := c.refreshes.DoChan("refresh", func() (any, error) {
		return nil, c.exchangeRefreshToken(context.WithoutCancel(ctx))
	})
	select {
	case res := <-flight:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) exchangeRefreshToken(ctx context.Context) error {
	refreshToken, err := c.tokens.RefreshToken(ctx)
	if err != nil || refreshToken == "" {
		return c.expire(ctx)
	}

	resp, err := c.send(ctx, request{
		method:    http.MethodPost,
		path:      "/auth/refresh",
		body:      map[string]string{"refresh_token": refreshToken},
		noRefresh: true,
	})
	if err != nil || resp.status != http.StatusOK {
		return c.expire(ctx)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.body, &out); err != nil || out.AccessToken == "" {
		return c.expire(ctx)
	}
	if err := c.tokens.SetAccessToken(ctx, out.AccessToken); err != nil {
		return c.expire(ctx)
	}
	return nil
}

// expire clears every stored credential and returns the session-expired
// error for the caller to propagate.
func (c *Client) expire(ctx context.Context) error {
	if err := c.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clearing credentials: %v: %w", err, sessionExpiredError())
	}
	return sessionExpiredError()
}

// send performs one HTTP round trip with the current access token.
func (c *Client) send(ctx context.Context, req request) (*response, error) {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading access token: %w", err)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, networkError(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, networkError(fmt.Errorf("reading response: %w", err))
	}
	return &response{status: httpResp.StatusCode, body: body}, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req request) (*http.Request, error) {
	target := c.cfg.endpoint(req.path)
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.form != nil:
		body = strings.NewReader(req.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.body != nil:
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	return httpReq, nil
}

// decodeList accepts either a bare JSON array or an object wrapping the
// array under one of the given keys.
func decodeList[T any](raw json.RawMessage, keys ...string) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}
	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		return items, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	for _, k := range keys {
		if inner, ok := wrapper[k]; ok {
			return decodeList[T](inner)
		}
	}
	return []T{}, nil
}
