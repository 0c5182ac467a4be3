// Package client is a thin HTTP client for the account routes used by the
// admin CLI.
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

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/httpapi"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

var (
	ErrUnavailable = errors.New("server unavailable")
)

// Me is the path segment of the self-service routes.
const Me = "me"

// APIError is a non-2xx response. Detail is the raw "detail" value.
type APIError struct {
	Status int
	Detail json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), string(e.Detail))
}

// Is maps status codes onto the shared sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case common.ErrorUnauthorized:
		return e.Status == http.StatusUnauthorized
	case common.ErrorForbidden:
		return e.Status == http.StatusForbidden
	case common.ErrorNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// Code returns the machine-readable code carried by the error, if any.
func (e *APIError) Code() common.Code {
	var s string
	if json.Unmarshal(e.Detail, &s) == nil {
		return common.Code(s)
	}
	var d struct {
		Code common.Code `json:"code"`
	}
	if json.Unmarshal(e.Detail, &d) == nil {
		return d.Code
	}
	return ""
}

type Client struct {
	baseURL string
	prefix  string
	token   string
	http    *http.Client
}

func New(baseURL, prefix, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		prefix:  "/" + strings.Trim(prefix, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Get fetches the account with id, or the caller's own account when id is Me.
func (c *Client) Get(ctx context.Context, id string) (*httpapi.AccountResponse, error) {
	var out httpapi.AccountResponse
	if err := c.do(ctx, http.MethodGet, id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends a partial update. Only non-nil fields of u are sent.
func (c *Client) Update(ctx context.Context, id string, u models.AccountUpdate) (*httpapi.AccountResponse, error) {
	var out httpapi.AccountResponse
	if err := c.do(ctx, http.MethodPatch, id, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, id string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+c.prefix+"/"+url.PathEscape(id), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var eb struct {
			Detail json.RawMessage `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &APIError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
