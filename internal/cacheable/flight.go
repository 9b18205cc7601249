// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ontodia Contributors

package cacheable

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// flight runs at most one computation per key and remembers successful
// results forever. Late joiners share the in-flight computation. A caller
// whose context ends stops waiting, but the computation itself runs to
// completion on a context that is never cancelled.
type flight[V any] struct {
	mu    sync.Mutex
	done  map[string]V
	group singleflight.Group
}

func newFlight[V any]() *flight[V] {
	return &flight[V]{done: make(map[string]V)}
}

func (f *flight[V]) cached(key string) (V, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.done[key]
	return v, ok
}

func (f *flight[V]) do(ctx context.Context, key string, fn func(context.Context) (V, error)) (V, error) {
	if v, ok := f.cached(key); ok {
		return v, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := f.group.DoChan(key, func() (any, error) {
		// Double-check inside the flight: a previous flight may have
		// finished between the lookup above and joining the group.
		if v, ok := f.cached(key); ok {
			return v, nil
		}
		v, err := fn(detached)
		if err != nil {
			return v, err
		}
		f.mu.Lock()
		f.done[key] = v
		f.mu.Unlock()
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(V)
		if !ok {
			return zero, nil
		}
		return v, nil
	}
}

// len reports how many keys have a remembered result.
func (f *flight[V]) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.done)
}
