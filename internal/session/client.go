package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
)

// Client performs authenticated requests against the upstream API with
// credentials included. A 401 triggers exactly one token refresh and,
// when the refresh succeeds, exactly one retry of the original request
// with identical options; the retried request carries no new token
// explicitly and relies on the server-rotated cookie.
type Client struct {
	http       *http.Client
	refreshURL string
	clearURL   string
	log        *slog.Logger
}

// NewClient builds a Client around base, which wants a cookie jar so
// server-set cookies survive across the refresh/retry sequence. A nil
// base gets a jarred default client.
func NewClient(base *http.Client, refreshURL, clearURL string, log *slog.Logger) *Client {
	if base == nil {
		jar, _ := cookiejar.New(nil)
		base = &http.Client{Jar: jar}
	}
	return &Client{
		http:       base,
		refreshURL: refreshURL,
		clearURL:   clearURL,
		log:        log,
	}
}

// Do sends the request, refreshing and retrying once on 401. The
// response is returned as-is when the retry still fails; no further
// attempts are made.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	if tok := c.RefreshAccessToken(req.Context()); tok == "" {
		return resp, nil
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			c.log.Error("request body replay failed", slog.Any("err", err))
			return resp, nil
		}
		retry.Body = body
	}

	resp.Body.Close()
	return c.http.Do(retry)
}

// RefreshAccessToken calls the refresh endpoint and returns the new
// token, or empty on any failure. Errors are logged, never returned.
func (c *Client) RefreshAccessToken(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.refreshURL, strings.NewReader("{}"))
	if err != nil {
		c.log.Error("refresh request build failed", slog.Any("err", err))
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("token refresh failed", slog.Any("err", err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("token refresh rejected", slog.Int("status", resp.StatusCode))
		return ""
	}

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Error("token refresh parse failed", slog.Any("err", err))
		return ""
	}
	return body.AccessToken
}

// ClearRemote fires the token-clear endpoint without waiting on the
// outcome. Failures are logged and otherwise ignored.
func (c *Client) ClearRemote(ctx context.Context) {
	go func() {
		req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, c.clearURL, nil)
		if err != nil {
			c.log.Error("clear request build failed", slog.Any("err", err))
			return
		}
		resp, err := c.http.Do(req)
		if err != nil {
			c.log.Error("token clear failed", slog.Any("err", err))
			return
		}
		resp.Body.Close()
	}()
}
