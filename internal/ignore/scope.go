package ignore

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bethropolis/dir-concat/internal/pattern"
)

// Enter pushes the scope for relDir (slash-separated, relative to the root;
// "" or "." for the root itself). The directory's ignore file, when present,
// contributes rules after the inherited ones.
func (r *Registry) Enter(relDir string) {
	relDir = cleanRel(relDir)
	scope := &Scope{parent: r.current, dir: relDir}
	if r.current != nil {
		scope.depth = r.current.depth + 1
	}

	if !r.disabled {
		scope.rules = r.readRules(relDir)
	}

	r.current = scope
}

// Leave pops the scope pushed by the matching Enter.
func (r *Registry) Leave() {
	if r.current == nil {
		return
	}
	r.current = r.current.parent
}

// Depth reports how many scopes are on the stack, custom rules included.
func (r *Registry) Depth() int {
	if r.current == nil {
		return 0
	}
	return r.current.depth + 1
}

// Current returns the innermost scope, or nil before the first Enter.
func (r *Registry) Current() *Scope {
	return r.current
}

// readRules loads relDir's ignore file. A missing file yields no rules; an
// unreadable one or a malformed line is reported and skipped.
func (r *Registry) readRules(relDir string) []pattern.Rule {
	file := filepath.Join(r.rootDir, filepath.FromSlash(relDir), r.fileName)

	f, err := os.Open(file)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("Could not read ignore file '%s': %v", file, err)
		}
		return nil
	}
	defer f.Close()

	rules, errs := pattern.Parse(f, relDir)
	for _, err := range errs {
		r.logger.Warn("Dropping pattern in '%s': %v", file, err)
	}
	r.logger.Debug("ignore.Enter: %d rules from %s", len(rules), file)
	return rules
}

// Decide walks the scope chain from the innermost rule backwards; the first
// rule found is the last one to match in parent-then-child order.
func (s *Scope) Decide(rel string, isDir bool) (ignored, matched bool) {
	for sc := s; sc != nil; sc = sc.parent {
		for i := len(sc.rules) - 1; i >= 0; i-- {
			rule := sc.rules[i]
			if rule.Match(rel, isDir) {
				return !rule.Negate, true
			}
		}
	}
	return false, false
}

// Dir returns the directory the scope belongs to.
func (s *Scope) Dir() string {
	return s.dir
}

// Rules returns every rule in effect, outermost first.
func (s *Scope) Rules() []pattern.Rule {
	if s == nil {
		return nil
	}
	return append(s.parent.Rules(), s.rules...)
}

func cleanRel(rel string) string {
	rel = path.Clean(filepath.ToSlash(rel))
	if rel == "." || rel == "/" {
		return ""
	}
	return rel
}
