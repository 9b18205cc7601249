// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

// Package remote implements a graph.DataSource backed by another Ontodia
// server, so that one instance can federate the sources of another.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
	"github.com/asanchez75/ontodia/pkg/graph"
)

// DefaultTimeout bounds one request when no client is supplied.
const DefaultTimeout = 30 * time.Second

const apiPrefix = "/api/v1"

// Compile-time interface check.
var _ graph.DataSource = (*Client)(nil)

// Client calls the REST API of a running Ontodia server.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// New creates a client for the server at endpoint, e.g.
// "http://localhost:18790".
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.baseURL
}

// problem is the RFC 9457 error body returned by the server.
type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	url := c.baseURL + apiPrefix + path

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return ontoerr.Wrap(err, ontoerr.CodeRemoteRequestFailure, "encoding request", ontoerr.FieldURL(url))
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return ontoerr.Wrap(err, ontoerr.CodeRemoteRequestFailure, "building request", ontoerr.FieldURL(url))
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if isDialError(err) {
			return ontoerr.Wrap(err, ontoerr.CodeRemoteEndpointNotRunning, "remote server is not running", ontoerr.FieldURL(url))
		}
		return ontoerr.Wrap(err, ontoerr.CodeRemoteRequestFailure, "request failed", ontoerr.FieldURL(url))
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("remote call",
		slog.String("method", method),
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		msg := strings.TrimSpace(string(raw))
		var p problem
		if json.Unmarshal(raw, &p) == nil && p.Detail != "" {
			msg = p.Detail
		}
		return ontoerr.New(ontoerr.CodeRemoteRequestFailure, "remote server returned "+resp.Status+": "+msg,
			ontoerr.FieldURL(url), ontoerr.Field("status", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ontoerr.Wrap(err, ontoerr.CodeRemoteResponseInvalid, "invalid response", ontoerr.FieldURL(url))
	}
	return nil
}

// isDialError returns true if err is a net dial error (connection refused, etc.).
func isDialError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial"
	}
	return false
}

func (c *Client) ClassTree(ctx context.Context) ([]graph.ClassModel, error) {
	var out []graph.ClassModel
	if err := c.do(ctx, http.MethodGet, "/class-tree", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PropertyInfo(ctx context.Context, params graph.PropertyInfoParams) (map[string]graph.PropertyModel, error) {
	var out map[string]graph.PropertyModel
	if err := c.do(ctx, http.MethodPost, "/property-info", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ClassInfo(ctx context.Context, params graph.ClassInfoParams) ([]graph.ClassModel, error) {
	var out []graph.ClassModel
	if err := c.do(ctx, http.MethodPost, "/class-info", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LinkTypesInfo(ctx context.Context, params graph.LinkTypesInfoParams) ([]graph.LinkType, error) {
	var out []graph.LinkType
	if err := c.do(ctx, http.MethodPost, "/link-types-info", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LinkTypes(ctx context.Context) ([]graph.LinkType, error) {
	var out []graph.LinkType
	if err := c.do(ctx, http.MethodGet, "/link-types", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ElementInfo(ctx context.Context, params graph.ElementInfoParams) (map[string]graph.ElementModel, error) {
	var out map[string]graph.ElementModel
	if err := c.do(ctx, http.MethodPost, "/element-info", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LinksInfo(ctx context.Context, params graph.LinksInfoParams) ([]graph.LinkModel, error) {
	var out []graph.LinkModel
	if err := c.do(ctx, http.MethodPost, "/links-info", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LinkTypesOf(ctx context.Context, params graph.LinkTypesOfParams) ([]graph.LinkCount, error) {
	var out []graph.LinkCount
	if err := c.do(ctx, http.MethodPost, "/link-types-of", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LinkElements(ctx context.Context, params graph.LinkElementsParams) (map[string]graph.ElementModel, error) {
	var out map[string]graph.ElementModel
	if err := c.do(ctx, http.MethodPost, "/link-elements", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Filter(ctx context.Context, params graph.FilterParams) (map[string]graph.ElementModel, error) {
	var out map[string]graph.ElementModel
	if err := c.do(ctx, http.MethodPost, "/filter", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}
