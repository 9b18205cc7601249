// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package cacheable

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
)

// DocumentURL returns the part of id before any fragment, when id is an
// absolute http(s) reference that can be dereferenced.
func DocumentURL(id string) (string, bool) {
	raw, _, _ := strings.Cut(id, "#")
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return raw, true
	default:
		return "", false
	}
}

// dereference tries each media type in priority order until one document is
// fetched, parsed and stored. Failures are logged and never returned.
func (s *Store) dereference(ctx context.Context, raw string) bool {
	for _, mime := range s.parser.MIMETypes() {
		body, err := s.fetcher.Fetch(ctx, raw, mime)
		if err != nil {
			s.recorder.FetchAttempt(mime, FetchFailed)
			s.logger.Warn("dereference fetch failed",
				slog.String("url", raw),
				slog.String("mime", mime),
				slog.Any("error", err),
			)
			continue
		}

		g, err := s.parser.Parse(body, mime)
		if err != nil {
			s.recorder.FetchAttempt(mime, FetchParseError)
			s.logger.Warn("dereferenced document did not parse",
				slog.String("url", raw),
				slog.String("mime", mime),
				slog.Any("error", err),
			)
			continue
		}

		if err := s.ingest(ctx, raw, g, raw); err != nil {
			s.recorder.FetchAttempt(mime, FetchStoreError)
			s.logger.Error("storing dereferenced document",
				slog.String("url", raw),
				slog.Any("error", err),
			)
			return false
		}

		s.recorder.FetchAttempt(mime, FetchOK)
		s.logger.Debug("dereferenced document",
			slog.String("url", raw),
			slog.String("mime", mime),
			slog.Int("triples", g.Len()),
		)
		return true
	}
	return false
}
