// Package walker handles directory traversal and file selection
package walker

import (
	"context"
	"path/filepath"

	"github.com/bethropolis/dir-concat/internal/utils"
)

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger     utils.Logger
	Context    context.Context
	ProgressFn ProgressFunc
	Excluded   []string // Absolute paths never selected, such as the output file
}

// defaultOptions returns the default walk options
func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:     &utils.NoopLogger{},
		Context:    context.Background(),
		ProgressFn: nil,
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithContext sets the context checked before each directory is read
func WithContext(ctx context.Context) Option {
	return func(opts *WalkOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

// WithProgress adds a progress callback function
func WithProgress(fn ProgressFunc) Option {
	return func(o *WalkOptions) {
		o.ProgressFn = fn
	}
}

// WithExcludedPaths keeps the given files out of the selection. Paths are
// made absolute; entries that cannot be resolved are dropped.
func WithExcludedPaths(paths ...string) Option {
	return func(o *WalkOptions) {
		for _, p := range paths {
			if p == "" {
				continue
			}
			if abs, err := filepath.Abs(p); err == nil {
				o.Excluded = append(o.Excluded, abs)
			}
		}
	}
}
