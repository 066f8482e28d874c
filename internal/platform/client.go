// Package platform wraps the remote platform REST API. Each method maps to one
// endpoint, returns the unwrapped payload, and reports every failure as an
// *Error. There is no retry, backoff or caching here; a failed call surfaces
// straight to the operator.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"backoffice/internal/config"
	appErr "backoffice/pkg/errors"
	"backoffice/pkg/requestid"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http *resty.Client
}

func NewClient(cfg config.PlatformConfig) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout()).
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		rc.SetAuthToken(cfg.Token)
	}
	return &Client{http: rc}
}

// Pagination mirrors the platform's list metadata.
type Pagination struct {
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Total       int64 `json:"total,omitempty"`
}

type Page[T any] struct {
	Rows       []T        `json:"rows"`
	Pagination Pagination `json:"pagination"`
}

// MutationResult is what every create, update and delete endpoint returns.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type UploadResult struct {
	URL string `json:"url"`
}

type ListParams struct {
	Page   int
	Limit  int
	Filter string
	Search string
}

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalized clamps paging the same way every list endpoint expects it.
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	p.Filter = strings.TrimSpace(p.Filter)
	p.Search = strings.TrimSpace(p.Search)
	return p
}

func (p ListParams) query() map[string]string {
	q := map[string]string{}
	if p.Page > 0 {
		q["page"] = strconv.Itoa(p.Page)
	}
	if p.Limit > 0 {
		q["limit"] = strconv.Itoa(p.Limit)
	}
	if p.Filter != "" {
		q["filter"] = p.Filter
	}
	if p.Search != "" {
		q["search"] = p.Search
	}
	return q
}

type upload struct {
	field    string
	filename string
	content  io.Reader
}

type call struct {
	method   string
	path     string
	params   map[string]string
	query    map[string]string
	body     any
	form     map[string]string
	file     *upload
	fallback string
}

type envelope struct {
	Success *bool           `json:"success"`
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) send(ctx context.Context, cl call) ([]byte, int, error) {
	for name, v := range cl.params {
		if strings.TrimSpace(v) == "" {
			return nil, 0, &Error{Kind: KindUnknown, Message: "missing " + name, Err: appErr.ErrInvalidID}
		}
	}
	r := c.http.R().SetContext(ctx)
	if id := requestid.FromContext(ctx); id != "" {
		r.SetHeader(requestid.Header, id)
	}
	if len(cl.params) > 0 {
		r.SetPathParams(cl.params)
	}
	if len(cl.query) > 0 {
		r.SetQueryParams(cl.query)
	}
	if cl.file != nil {
		r.SetFileReader(cl.file.field, cl.file.filename, cl.file.content)
		if len(cl.form) > 0 {
			r.SetFormData(cl.form)
		}
	} else if cl.body != nil {
		r.SetBody(cl.body)
	}

	resp, err := r.Execute(cl.method, cl.path)
	if err != nil {
		return nil, 0, NetworkError(err)
	}
	if resp.IsError() {
		return nil, resp.StatusCode(), ServerError(resp.StatusCode(), resp.Body(), cl.fallback)
	}
	return resp.Body(), resp.StatusCode(), nil
}

// fetch performs cl and decodes the unwrapped payload into a T.
func fetch[T any](ctx context.Context, c *Client, cl call) (*T, error) {
	body, status, err := c.send(ctx, cl)
	if err != nil {
		return nil, err
	}
	payload, err := unwrap(body, status, cl.fallback)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, Normalize(fmt.Errorf("unexpected response from %s: %w", cl.path, err), cl.fallback)
	}
	return &out, nil
}

func mutate(ctx context.Context, c *Client, cl call) (*MutationResult, error) {
	body, status, err := c.send(ctx, cl)
	if err != nil {
		return nil, err
	}
	res := &MutationResult{Success: true}
	if len(bytes.TrimSpace(body)) == 0 {
		return res, nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, Normalize(fmt.Errorf("unexpected response from %s: %w", cl.path, err), cl.fallback)
	}
	if env.Success != nil && !*env.Success {
		return nil, ServerError(status, body, cl.fallback)
	}
	res.Message = rawString(env.Message)
	return res, nil
}

// unwrap strips the {success, message, data} envelope when the platform sends
// one. A response with success=false is a failure even on a 2xx status.
func unwrap(body []byte, status int, fallback string) ([]byte, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed, nil
	}
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, Normalize(fmt.Errorf("unexpected response: %w", err), fallback)
	}
	if env.Success != nil && !*env.Success {
		return nil, ServerError(status, trimmed, fallback)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return trimmed, nil
	}
	return env.Data, nil
}
