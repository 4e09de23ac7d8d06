// Package ignore tracks the gitignore-style rules in effect while a
// directory tree is walked.
//
// A Registry keeps one Scope per directory on the walk stack. Enter reads
// the directory's ignore file and pushes a scope holding the parent's rules
// followed by its own; Leave pops it. IsIgnored evaluates the rules of the
// current scope in order and lets the last match decide, so deeper files
// override shallower ones and '!' lines re-include earlier exclusions.
package ignore

// NewFromConfig creates a Registry from a Config struct
func NewFromConfig(cfg Config) (*Registry, error) {
	options := []Option{
		WithFileName(cfg.FileName),
		WithHiddenIgnore(cfg.IgnoreHidden),
		WithExcludesFile(cfg.ExcludesFile),
		WithDisabled(cfg.Disabled),
	}

	if len(cfg.CustomRules) > 0 {
		options = append(options, WithCustomRules(cfg.CustomRules))
	}

	if cfg.Logger != nil {
		options = append(options, WithLogger(cfg.Logger))
	}

	return New(cfg.RootDir, options...)
}

// IsIgnored is a nil-safe convenience wrapper around Registry.IsIgnored.
func IsIgnored(r *Registry, path string, isDir bool) bool {
	if r == nil {
		return false
	}
	return r.IsIgnored(path, isDir)
}
