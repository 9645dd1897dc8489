package dataset

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// Source is the process-wide dataset handle. The file is read on the first
// Load and the outcome, dataset or error, is kept for the life of the Source.
// A load cut short by the caller's context is not kept; the next Load reads
// the file again.
type Source struct {
	path   string
	loader *Loader

	mu     sync.Mutex
	done   bool
	data   *Dataset
	err    error
	loaded atomic.Bool
}

func NewSource(path string, loader *Loader) *Source {
	if loader == nil {
		loader = NewLoader(nil)
	}
	return &Source{path: path, loader: loader}
}

// StaticSource wraps an already built dataset.
func StaticSource(d *Dataset) *Source {
	s := &Source{path: d.Path(), done: true, data: d}
	s.loaded.Store(true)
	return s
}

func (s *Source) Load(ctx context.Context) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return s.data, s.err
	}

	data, err := s.loader.LoadFile(ctx, s.path)
	if err != nil && isCancellation(err) {
		return nil, err
	}

	s.data, s.err, s.done = data, err, true
	s.loaded.Store(err == nil)
	return s.data, s.err
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Loaded reports whether a Load has completed successfully.
func (s *Source) Loaded() bool {
	return s.loaded.Load()
}

func (s *Source) Path() string {
	return s.path
}
