// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

// Package federation combines several graph data sources into one. Every
// query is sent to all sources concurrently and the answers are merged
// deterministically in registration order.
package federation

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	ontoerr "github.com/asanchez75/ontodia/pkg/errors"
	"github.com/asanchez75/ontodia/pkg/graph"
	"github.com/asanchez75/ontodia/pkg/health"
)

// Compile-time interface check.
var _ graph.DataSource = (*Federation)(nil)

// Operation names used in errors, logs and metrics.
const (
	OpClassTree     = "classTree"
	OpPropertyInfo  = "propertyInfo"
	OpClassInfo     = "classInfo"
	OpLinkTypesInfo = "linkTypesInfo"
	OpLinkTypes     = "linkTypes"
	OpElementInfo   = "elementInfo"
	OpLinksInfo     = "linksInfo"
	OpLinkTypesOf   = "linkTypesOf"
	OpLinkElements  = "linkElements"
	OpFilter        = "filter"
)

// NamedSource pairs a data source with the name used for provenance. An
// empty Name is replaced by a positional "dataProvider_<index>".
type NamedSource struct {
	Name   string
	Source graph.DataSource
}

// Recorder observes every call made to a source.
type Recorder interface {
	ObserveSourceCall(source, operation string, elapsed time.Duration, err error)
}

type member struct {
	name   string
	source graph.DataSource
	health *HealthTracker
}

// Federation is a graph.DataSource backed by several named sources.
type Federation struct {
	members  []member
	partial  bool
	logger   *slog.Logger
	recorder Recorder
}

// Option configures a Federation.
type Option func(*Federation)

// WithPartialResults makes calls succeed with the answers of the sources
// that responded when at least one did. Failed sources are logged and left
// out of the merge.
func WithPartialResults(enabled bool) Option {
	return func(f *Federation) {
		f.partial = enabled
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(f *Federation) {
		f.logger = logger
	}
}

// WithMetrics reports per-source call outcomes to r.
func WithMetrics(r Recorder) Option {
	return func(f *Federation) {
		f.recorder = r
	}
}

// New builds a federation over sources, keeping their order. Explicit names
// must be unique.
func New(sources []NamedSource, opts ...Option) (*Federation, error) {
	if len(sources) == 0 {
		return nil, ontoerr.New(ontoerr.CodeFederationConfigInvalid, "federation needs at least one source")
	}

	taken := make(map[string]bool, len(sources))
	for i, s := range sources {
		if s.Source == nil {
			return nil, ontoerr.New(ontoerr.CodeFederationConfigInvalid, "nil data source",
				ontoerr.Field("index", i))
		}
		if s.Name == "" {
			continue
		}
		if taken[s.Name] {
			return nil, ontoerr.New(ontoerr.CodeFederationSourceDuplicate, "duplicate source name",
				ontoerr.FieldSource(s.Name))
		}
		taken[s.Name] = true
	}

	f := &Federation{
		members: make([]member, 0, len(sources)),
		logger:  slog.Default(),
	}
	for i, s := range sources {
		name := s.Name
		if name == "" {
			name = positionalName(i, taken)
			taken[name] = true
		}
		f.members = append(f.members, member{name: name, source: s.Source, health: NewHealthTracker(name)})
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func positionalName(index int, taken map[string]bool) string {
	for n := index; ; n++ {
		name := fmt.Sprintf("dataProvider_%d", n)
		if !taken[name] {
			return name
		}
	}
}

// Sources returns the source names in registration order.
func (f *Federation) Sources() []string {
	names := make([]string, len(f.members))
	for i, m := range f.members {
		names[i] = m.name
	}
	return names
}

// Health returns a snapshot of every source's call history.
func (f *Federation) Health() []health.Metrics {
	out := make([]health.Metrics, len(f.members))
	for i, m := range f.members {
		out[i] = m.health.HealthMetrics()
	}
	return out
}

// tagged is one source's answer.
type tagged[T any] struct {
	source string
	value  T
}

// fanOut runs call against every source at once and returns the answers in
// registration order. Without partial results the first failure cancels the
// other calls and fails the whole operation.
func fanOut[T any](ctx context.Context, f *Federation, op string, call func(context.Context, graph.DataSource) (T, error)) ([]tagged[T], error) {
	var (
		values = make([]T, len(f.members))
		errs   = make([]error, len(f.members))
	)

	g, gctx := errgroup.WithContext(ctx)
	if f.partial {
		g = &errgroup.Group{}
		gctx = ctx
	}
	for i, m := range f.members {
		g.Go(func() error {
			start := time.Now()
			v, err := call(gctx, m.source)
			if err != nil && gctx.Err() != nil && ctx.Err() == nil {
				// Cancelled because another source failed.
				return nil
			}
			f.observe(m, op, time.Since(start), err)
			if err != nil {
				errs[i] = ontoerr.Wrap(err, ontoerr.CodeFederationSourceFailure, "source call failed",
					ontoerr.FieldSource(m.name), ontoerr.FieldOperation(op))
				if f.partial {
					return nil
				}
				return errs[i]
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]tagged[T], 0, len(f.members))
	var failed []error
	for i, m := range f.members {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			f.logger.Warn("skipping failed source",
				slog.String("source", m.name),
				slog.String("operation", op),
				slog.Any("error", errs[i]),
			)
			continue
		}
		out = append(out, tagged[T]{source: m.name, value: values[i]})
	}
	if len(out) == 0 {
		return nil, ontoerr.Wrap(stderrors.Join(failed...), ontoerr.CodeFederationAllFailed, "every source failed",
			ontoerr.FieldOperation(op))
	}
	return out, nil
}

func (f *Federation) observe(m member, op string, elapsed time.Duration, err error) {
	if err != nil {
		m.health.RecordFailure(err)
	} else {
		m.health.RecordSuccess()
	}
	if f.recorder != nil {
		f.recorder.ObserveSourceCall(m.name, op, elapsed, err)
	}
	f.logger.Debug("source call",
		slog.String("source", m.name),
		slog.String("operation", op),
		slog.Duration("elapsed", elapsed),
		slog.Bool("ok", err == nil),
	)
}

func (f *Federation) ClassTree(ctx context.Context) ([]graph.ClassModel, error) {
	results, err := fanOut(ctx, f, OpClassTree, func(ctx context.Context, ds graph.DataSource) ([]graph.ClassModel, error) {
		return ds.ClassTree(ctx)
	})
	if err != nil {
		return nil, err
	}
	forests := make([][]graph.ClassModel, len(results))
	for i, r := range results {
		forests[i] = r.value
	}
	return MergeClassTrees(forests...), nil
}

func (f *Federation) PropertyInfo(ctx context.Context, params graph.PropertyInfoParams) (map[string]graph.PropertyModel, error) {
	results, err := fanOut(ctx, f, OpPropertyInfo, func(ctx context.Context, ds graph.DataSource) (map[string]graph.PropertyModel, error) {
		return ds.PropertyInfo(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]graph.PropertyModel)
	for _, r := range results {
		for id, p := range r.value {
			prev, ok := out[id]
			if !ok {
				prev = graph.PropertyModel{ID: p.ID}
			}
			out[id] = MergeProperty(prev, p)
		}
	}
	return out, nil
}

func (f *Federation) ClassInfo(ctx context.Context, params graph.ClassInfoParams) ([]graph.ClassModel, error) {
	results, err := fanOut(ctx, f, OpClassInfo, func(ctx context.Context, ds graph.DataSource) ([]graph.ClassModel, error) {
		return ds.ClassInfo(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	lists := make([][]graph.ClassModel, len(results))
	for i, r := range results {
		lists[i] = r.value
	}
	return MergeClassLists(lists...), nil
}

func (f *Federation) LinkTypesInfo(ctx context.Context, params graph.LinkTypesInfoParams) ([]graph.LinkType, error) {
	results, err := fanOut(ctx, f, OpLinkTypesInfo, func(ctx context.Context, ds graph.DataSource) ([]graph.LinkType, error) {
		return ds.LinkTypesInfo(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return mergeLinkTypeResults(results), nil
}

func (f *Federation) LinkTypes(ctx context.Context) ([]graph.LinkType, error) {
	results, err := fanOut(ctx, f, OpLinkTypes, func(ctx context.Context, ds graph.DataSource) ([]graph.LinkType, error) {
		return ds.LinkTypes(ctx)
	})
	if err != nil {
		return nil, err
	}
	return mergeLinkTypeResults(results), nil
}

func mergeLinkTypeResults(results []tagged[[]graph.LinkType]) []graph.LinkType {
	lists := make([][]graph.LinkType, len(results))
	for i, r := range results {
		lists[i] = r.value
	}
	return MergeLinkTypes(lists...)
}

func (f *Federation) ElementInfo(ctx context.Context, params graph.ElementInfoParams) (map[string]graph.ElementModel, error) {
	results, err := fanOut(ctx, f, OpElementInfo, func(ctx context.Context, ds graph.DataSource) (map[string]graph.ElementModel, error) {
		return ds.ElementInfo(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return mergeElementResults(results), nil
}

func (f *Federation) LinksInfo(ctx context.Context, params graph.LinksInfoParams) ([]graph.LinkModel, error) {
	results, err := fanOut(ctx, f, OpLinksInfo, func(ctx context.Context, ds graph.DataSource) ([]graph.LinkModel, error) {
		return ds.LinksInfo(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	lists := make([][]graph.LinkModel, len(results))
	for i, r := range results {
		lists[i] = r.value
	}
	return MergeLinks(lists...), nil
}

func (f *Federation) LinkTypesOf(ctx context.Context, params graph.LinkTypesOfParams) ([]graph.LinkCount, error) {
	results, err := fanOut(ctx, f, OpLinkTypesOf, func(ctx context.Context, ds graph.DataSource) ([]graph.LinkCount, error) {
		return ds.LinkTypesOf(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	lists := make([][]graph.LinkCount, len(results))
	for i, r := range results {
		lists[i] = r.value
	}
	return MergeLinkCounts(lists...), nil
}

func (f *Federation) LinkElements(ctx context.Context, params graph.LinkElementsParams) (map[string]graph.ElementModel, error) {
	results, err := fanOut(ctx, f, OpLinkElements, func(ctx context.Context, ds graph.DataSource) (map[string]graph.ElementModel, error) {
		return ds.LinkElements(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return mergeElementResults(results), nil
}

func (f *Federation) Filter(ctx context.Context, params graph.FilterParams) (map[string]graph.ElementModel, error) {
	results, err := fanOut(ctx, f, OpFilter, func(ctx context.Context, ds graph.DataSource) (map[string]graph.ElementModel, error) {
		return ds.Filter(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return mergeElementResults(results), nil
}

func mergeElementResults(results []tagged[map[string]graph.ElementModel]) map[string]graph.ElementModel {
	out := make(map[string]graph.ElementModel)
	for _, r := range results {
		MergeElementMaps(out, r.source, r.value)
	}
	return out
}
