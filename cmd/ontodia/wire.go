// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/asanchez75/ontodia/internal/cacheable"
	"github.com/asanchez75/ontodia/internal/config"
	"github.com/asanchez75/ontodia/internal/federation"
	"github.com/asanchez75/ontodia/internal/fetch"
	"github.com/asanchez75/ontodia/internal/metrics"
	"github.com/asanchez75/ontodia/internal/rdf"
	"github.com/asanchez75/ontodia/internal/rdfsource"
	"github.com/asanchez75/ontodia/internal/remote"
	"github.com/asanchez75/ontodia/internal/server"
	"github.com/asanchez75/ontodia/internal/store"
	_ "github.com/asanchez75/ontodia/internal/store/memory" // register memory backend
	_ "github.com/asanchez75/ontodia/internal/store/sqlite" // register sqlite backend
	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
)

// Instance holds the wired sources and federation and owns their
// lifecycle.
type Instance struct {
	Federation *federation.Federation
	Metrics    *metrics.Metrics
	stores     []*cacheable.Store
}

// Wire builds every configured source and the federation over them.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Instance, error) {
	inst := &Instance{Metrics: metrics.New()}

	named := make([]federation.NamedSource, 0, len(cfg.Sources))
	for i, sc := range cfg.Sources {
		var (
			src federation.NamedSource
			err error
		)
		switch sc.Type {
		case config.SourceTypeRDF:
			src, err = inst.wireRDFSource(ctx, cfg.Proxy, sc, logger)
		case config.SourceTypeRemote:
			src = wireRemoteSource(sc, logger)
		default:
			err = ontoerr.New(ontoerr.CodeCLISetupFailure, "unknown source type", ontoerr.Field("type", sc.Type))
		}
		if err != nil {
			_ = inst.Close()
			return nil, ontoerr.Wrapf(err, ontoerr.CodeCLISetupFailure, "wiring sources[%d]", i)
		}
		named = append(named, src)
	}

	fed, err := federation.New(named,
		federation.WithPartialResults(cfg.Federation.PartialResults),
		federation.WithLogger(logger),
		federation.WithMetrics(inst.Metrics),
	)
	if err != nil {
		_ = inst.Close()
		return nil, err
	}
	inst.Federation = fed

	logger.Info("sources ready", slog.Any("sources", fed.Sources()))
	return inst, nil
}

func (inst *Instance) wireRDFSource(ctx context.Context, proxy config.ProxyConfig, sc config.SourceConfig, logger *slog.Logger) (federation.NamedSource, error) {
	backend, err := store.NewTripleStore(sc.Storage)
	if err != nil {
		return federation.NamedSource{}, err
	}

	opts := []cacheable.Option{
		cacheable.WithLogger(logger.With(slog.String("source", sc.Name))),
		cacheable.WithRecorder(inst.Metrics),
	}
	if sc.Fetching {
		opts = append(opts, cacheable.WithFetcher(fetch.NewProxyFetcher(proxy.Prefix,
			fetch.WithTimeout(proxy.Timeout),
			fetch.WithUserAgent(proxy.UserAgent),
		)))
	}
	cs, err := cacheable.Open(ctx, backend, opts...)
	if err != nil {
		_ = backend.Close()
		return federation.NamedSource{}, err
	}
	inst.stores = append(inst.stores, cs)

	src := rdfsource.New(cs, rdfsource.WithLogger(logger))
	if len(sc.Documents) > 0 {
		docs := make([]rdfsource.Document, 0, len(sc.Documents))
		for _, dc := range sc.Documents {
			content, err := os.ReadFile(dc.Path)
			if err != nil {
				return federation.NamedSource{}, ontoerr.Wrap(err, ontoerr.CodeSourceLoadFailure, "reading document",
					ontoerr.Field("path", dc.Path))
			}
			mime := dc.Type
			if mime == "" {
				mime = rdf.MIMEFromPath(dc.Path)
			}
			docs = append(docs, rdfsource.Document{Content: string(content), MIME: mime, Graph: dc.Graph})
		}
		if err := src.Load(ctx, docs...); err != nil {
			return federation.NamedSource{}, err
		}
	}

	stats, err := cs.Stats(ctx)
	if err == nil {
		logger.Debug("rdf source loaded",
			slog.String("source", sc.Name),
			slog.String("backend", sc.Storage.Backend),
			slog.Bool("fetching", sc.Fetching),
			slog.Any("stats", stats),
		)
	}
	return federation.NamedSource{Name: sc.Name, Source: src}, nil
}

func wireRemoteSource(sc config.SourceConfig, logger *slog.Logger) federation.NamedSource {
	timeout := sc.Timeout
	if timeout == 0 {
		timeout = remote.DefaultTimeout
	}
	client := remote.New(sc.Endpoint,
		remote.WithHTTPClient(&http.Client{Timeout: timeout}),
		remote.WithLogger(logger),
	)
	return federation.NamedSource{Name: sc.Name, Source: client}
}

// NewServer builds the HTTP server for inst.
func (inst *Instance) NewServer(cfg *config.Config, logger *slog.Logger) (*server.Server, error) {
	svc, err := server.NewServices(inst.Federation, inst.Federation, inst.Metrics.Handler())
	if err != nil {
		return nil, err
	}
	return server.New(server.Config{
		ListenAddr:   cfg.Server.ListenAddr,
		CORSOrigins:  cfg.Server.CORSOrigins,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Services:     svc,
		Proxy: server.NewLODProxy(cfg.Proxy.Timeout,
			server.WithProxyUserAgent(cfg.Proxy.UserAgent),
			server.WithProxyLogger(logger),
		),
		Logger: logger,
	})
}

// Close closes every triple store opened by Wire.
func (inst *Instance) Close() error {
	var errs []error
	for _, cs := range inst.stores {
		if err := cs.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
