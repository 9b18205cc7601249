// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

// Package fetch retrieves Linked Data documents through a path-prefixed
// forwarding proxy.
package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

const (
	// DefaultAccept is sent when the caller does not name a media type.
	DefaultAccept = "application/rdf+xml"

	// DefaultMaxBodyBytes bounds the size of a fetched document.
	DefaultMaxBodyBytes = 32 << 20

	defaultTimeout = 30 * time.Second
)

// ProxyFetcher issues GET <prefix><url> with an Accept header. An empty
// prefix fetches the URL directly.
type ProxyFetcher struct {
	prefix    string
	client    *http.Client
	userAgent string
	maxBody   int64
}

// Option configures a ProxyFetcher.
type Option func(*ProxyFetcher)

func WithHTTPClient(c *http.Client) Option {
	return func(f *ProxyFetcher) {
		f.client = c
	}
}

func WithTimeout(d time.Duration) Option {
	return func(f *ProxyFetcher) {
		if d > 0 {
			f.client = &http.Client{Timeout: d}
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(f *ProxyFetcher) {
		f.userAgent = ua
	}
}

func WithMaxBodyBytes(n int64) Option {
	return func(f *ProxyFetcher) {
		if n > 0 {
			f.maxBody = n
		}
	}
}

func NewProxyFetcher(prefix string, opts ...Option) *ProxyFetcher {
	f := &ProxyFetcher{
		prefix:  prefix,
		client:  &http.Client{Timeout: defaultTimeout},
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Prefix returns the proxy prefix prepended to every URL.
func (f *ProxyFetcher) Prefix() string {
	return f.prefix
}

// Fetch returns the response body for rawURL. Transport errors, non-2xx
// responses and bodies over the size limit are reported as fetch.request.upstream_failure.
func (f *ProxyFetcher) Fetch(ctx context.Context, rawURL, accept string) (string, error) {
	if accept == "" {
		accept = DefaultAccept
	}
	target := f.prefix + rawURL

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", ontoerr.Wrap(err, ontoerr.CodeFetchRequestInvalid, "building fetch request",
			ontoerr.FieldURL(rawURL))
	}
	req.Header.Set("Accept", accept)
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", ontoerr.Wrap(err, ontoerr.CodeFetchRequestUpstreamFailure, "fetching document",
			ontoerr.FieldURL(rawURL), ontoerr.FieldMIME(accept))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", ontoerr.New(ontoerr.CodeFetchRequestUpstreamFailure, "fetch returned "+resp.Status,
			ontoerr.FieldURL(rawURL), ontoerr.FieldMIME(accept), ontoerr.Field("status", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return "", ontoerr.Wrap(err, ontoerr.CodeFetchRequestUpstreamFailure, "reading fetched document",
			ontoerr.FieldURL(rawURL), ontoerr.FieldMIME(accept))
	}
	if int64(len(body)) > f.maxBody {
		return "", ontoerr.New(ontoerr.CodeFetchRequestUpstreamFailure, "fetched document exceeds size limit",
			ontoerr.FieldURL(rawURL), ontoerr.FieldMIME(accept), ontoerr.Field("max_bytes", f.maxBody))
	}
	return string(body), nil
}
