package ignore

import (
	"path"
	"strings"
)

// IsIgnored reports whether rel (relative to the root) is excluded under the
// current scope. VCS metadata directories are always excluded; otherwise the
// last matching rule decides, and the excludes file is asked only when no
// rule matched.
func (r *Registry) IsIgnored(rel string, isDir bool) bool {
	if r == nil {
		return false
	}

	rel = cleanRel(rel)
	if rel == "" {
		return false // Never ignore the root itself
	}

	base := path.Base(rel)
	if _, ok := vcsDirs[base]; ok {
		r.logger.Debug("ignore.IsIgnored: Ignored %q (VCS metadata)", rel)
		return true
	}

	if r.disabled {
		return false
	}

	if r.ignoreHidden && strings.HasPrefix(base, ".") {
		r.logger.Debug("ignore.IsIgnored: Ignored %q (hidden rule)", rel)
		return true
	}

	if r.current != nil {
		if ignored, matched := r.current.Decide(rel, isDir); matched {
			r.logger.Debug("ignore.IsIgnored: %q ignored=%v by rule", rel, ignored)
			return ignored
		}
	}

	if r.excludes != nil {
		if m := r.excludes.Relative(rel, isDir); m != nil {
			r.logger.Debug("ignore.IsIgnored: %q ignored=%v by excludes file", rel, m.Ignore())
			return m.Ignore()
		}
	}

	return false
}
