// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/asanchez75/ontodia/internal/fetch"
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

// ProxyPath is where the Linked Data proxy is mounted. A request for
// ProxyPath + "http://example.org/x" is forwarded to http://example.org/x.
const ProxyPath = "/lod-proxy/"

// LODProxy forwards GET requests to the absolute http(s) URL that follows
// ProxyPath, relaying the Accept header, status, Content-Type and body.
type LODProxy struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
}

// ProxyOption configures a LODProxy.
type ProxyOption func(*LODProxy)

func WithProxyClient(c *http.Client) ProxyOption {
	return func(p *LODProxy) {
		p.client = c
	}
}

func WithProxyUserAgent(ua string) ProxyOption {
	return func(p *LODProxy) {
		p.userAgent = ua
	}
}

func WithProxyLogger(logger *slog.Logger) ProxyOption {
	return func(p *LODProxy) {
		p.logger = logger
	}
}

// NewLODProxy creates a proxy whose upstream requests time out after
// timeout.
func NewLODProxy(timeout time.Duration, opts ...ProxyOption) *LODProxy {
	p := &LODProxy{
		client: &http.Client{Timeout: timeout},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// targetURL rebuilds the upstream URL from the wildcard part of the path.
// Some clients collapse "//" in paths, so "http:/host" is repaired.
func targetURL(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "*")
	for _, scheme := range []string{"http:/", "https:/"} {
		if strings.HasPrefix(raw, scheme) && !strings.HasPrefix(raw, scheme+"/") {
			raw = scheme + "/" + strings.TrimPrefix(raw, scheme)
		}
	}
	if r.URL.RawQuery != "" {
		raw += "?" + r.URL.RawQuery
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", ontoerr.Wrap(err, ontoerr.CodeServerRequestInvalid, "invalid proxy target", ontoerr.FieldURL(raw))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ontoerr.New(ontoerr.CodeServerRequestInvalid, "proxy target must be an absolute http(s) URL",
			ontoerr.FieldURL(raw))
	}
	return u.String(), nil
}

func (p *LODProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target, err := targetURL(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	accept := r.Header.Get("Accept")
	if accept == "" {
		accept = fetch.DefaultAccept
	}
	req.Header.Set("Accept", accept)
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		err = ontoerr.Wrap(err, ontoerr.CodeServerProxyFailure, "upstream request failed", ontoerr.FieldURL(target))
		p.logger.Warn("lod proxy request failed", slog.String("url", target), slog.Any("error", err))
		http.Error(w, err.Error(), ontoerr.HTTPStatus(err))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		p.logger.Warn("lod proxy copy failed", slog.String("url", target), slog.Any("error", err))
	}

	p.logger.Debug("lod proxy",
		slog.String("url", target),
		slog.String("accept", accept),
		slog.Int("status", resp.StatusCode),
	)
}
