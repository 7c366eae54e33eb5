// Package cli implements claimboardctl, the operator client for the claimboard api
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "claimboard/internal/platform/errors"
)

// envelope mirrors the server response wrapper
type envelope struct {
	StatusCode int             `json:"status_code"`
	Code       perr.ErrorCode  `json:"code"`
	Error      string          `json:"error"`
	RequestID  string          `json:"request_id"`
	Data       json.RawMessage `json:"data"`
}

// Client talks to /api/v1 with a bearer token
type Client struct {
	base  string
	token string
	http  *http.Client
}

// NewClient returns a client for server, which may carry a path prefix
func NewClient(server, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:  strings.TrimRight(server, "/") + "/api/v1",
		token: token,
		http:  &http.Client{Timeout: timeout},
	}
}

// Do sends body as json and decodes the envelope data into out when out is non nil
// non 2xx responses become *perr.Error carrying the server code
func (c *Client) Do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "encode request")
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "request failed")
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "decode response (http %d)", res.StatusCode)
	}
	if res.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		code := env.Code
		if code == perr.ErrorCodeUnknown {
			code = codeForStatus(res.StatusCode)
		}
		return perr.Newf(code, "%s (http %d)", msg, res.StatusCode)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "decode data")
	}
	return nil
}

func codeForStatus(status int) perr.ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return perr.ErrorCodeUnauthorized
	case http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case http.StatusTooManyRequests:
		return perr.ErrorCodeTooManyRequests
	case http.StatusServiceUnavailable:
		return perr.ErrorCodeUnavailable
	default:
		return perr.ErrorCodeUnknown
	}
}
