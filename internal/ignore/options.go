package ignore

import "github.com/bethropolis/dir-concat/internal/utils"

// Option configures a Registry.
type Option func(*Registry)

// WithFileName sets the name of the per-directory ignore file.
func WithFileName(name string) Option {
	return func(r *Registry) {
		if name != "" {
			r.fileName = name
		}
	}
}

// WithHiddenIgnore makes every entry whose name starts with '.' ignored.
func WithHiddenIgnore(ignore bool) Option {
	return func(r *Registry) {
		r.ignoreHidden = ignore
	}
}

// WithCustomRules adds pattern lines that apply to the whole tree. They are
// evaluated before the root ignore file, so any ignore file can override them.
func WithCustomRules(patterns []string) Option {
	return func(r *Registry) {
		r.customRules = patterns
	}
}

// WithExcludesFile sets a global excludes file, read once and consulted
// only for paths no ignore-file rule matched.
func WithExcludesFile(path string) Option {
	return func(r *Registry) {
		r.excludesFile = path
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithDisabled(disabled bool) Option {
	return func(r *Registry) {
		r.disabled = disabled
	}
}
