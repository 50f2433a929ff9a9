// Package store provides the uniform feature-state container: one loading
// flag, one data payload, one error slot, and one fetch action. Every
// feature area instantiates a Resource over its endpoint binding instead
// of hand-rolling the same shape.
package store

import (
	"context"
	"log"
	"net/url"
	"sync"
)

// FetchFunc loads a feature's data from the backend.
type FetchFunc[T any] func(ctx context.Context, params url.Values) (T, error)

// Resource is one feature's state container.
type Resource[T any] struct {
	name  string
	fetch FetchFunc[T]

	mu      sync.Mutex
	loading bool
	data    *T
	err     error

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// NewResource builds a resource named for its feature area.
func NewResource[T any](name string, fetch FetchFunc[T]) *Resource[T] {
	return &Resource[T]{
		name:  name,
		fetch: fetch,
		subs:  make(map[int]chan struct{}),
	}
}

// Fetch runs the fetch action: sets the loading flag, clears the error
// slot, stores the payload or the failure, and always clears the flag
// again. Failures are logged and re-returned to the caller.
func (r *Resource[T]) Fetch(ctx context.Context, params url.Values) (T, error) {
	r.mu.Lock()
	r.loading = true
	r.err = nil
	r.mu.Unlock()
	r.notify()

	data, err := r.fetch(ctx, params)

	r.mu.Lock()
	r.loading = false
	if err != nil {
		r.err = err
	} else {
		r.data = &data
	}
	r.mu.Unlock()
	r.notify()

	if err != nil {
		log.Printf("failed to fetch %s data: %v", r.name, err)
		var zero T
		return zero, err
	}
	return data, nil
}

// Loading reports whether a fetch is in flight.
func (r *Resource[T]) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// Data returns the last successful payload, if any.
func (r *Resource[T]) Data() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		var zero T
		return zero, false
	}
	return *r.data, true
}

// Err returns the error slot from the most recent fetch.
func (r *Resource[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Subscribe registers a change listener, signalled after every state
// transition. The returned function cancels the subscription.
func (r *Resource[T]) Subscribe() (<-chan struct{}, func()) {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	id := r.nextSub
	r.nextSub++
	ch := make(chan struct{}, 1)
	r.subs[id] = ch

	cancel := func() {
		r.subMu.Lock()
		defer r.subMu.Unlock()
		delete(r.subs, id)
	}
	return ch, cancel
}

func (r *Resource[T]) notify() {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for _, ch := range r.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
