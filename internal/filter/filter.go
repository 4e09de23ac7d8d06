// Package filter decides whether a file is selected by the whitelist and
// blacklist given on the command line.
//
// Entries match either a file's extension or its exact basename. The
// whitelist is applied first: when non-empty, a file must appear in it.
// The blacklist is applied second: a file appearing in it is dropped even
// when the whitelist admitted it.
package filter

import (
	"path"
	"sort"
	"strings"
)

// Spec is an immutable whitelist/blacklist pair.
type Spec struct {
	white list
	black list
}

type list struct {
	names map[string]struct{} // exact basenames
	exts  map[string]struct{} // lowercased, no leading dot; file extensions are looked up as-is
}

// New builds a Spec. Entries are trimmed; empty entries are dropped.
func New(white, black []string) Spec {
	return Spec{white: newList(white), black: newList(black)}
}

// ParseList splits a comma-separated flag value into trimmed, non-empty entries.
func ParseList(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(csv, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func newList(entries []string) list {
	l := list{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if l.names == nil {
			l.names = make(map[string]struct{})
			l.exts = make(map[string]struct{})
		}
		l.names[entry] = struct{}{}
		if ext := strings.ToLower(strings.TrimPrefix(entry, ".")); ext != "" {
			l.exts[ext] = struct{}{}
		}
	}
	return l
}

func (l list) empty() bool {
	return len(l.names) == 0
}

func (l list) contains(name string) bool {
	if _, ok := l.names[name]; ok {
		return true
	}
	ext := Ext(name)
	if ext == "" {
		return false
	}
	_, ok := l.exts[ext]
	return ok
}

// Ext returns the extension of name without the dot. Names whose only dot
// is the leading one, such as ".env", have no extension.
func Ext(name string) string {
	base := strings.TrimLeft(path.Base(name), ".")
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return base[i+1:]
	}
	return ""
}

// Whitelist returns the whitelist entries in sorted order.
func (s Spec) Whitelist() []string { return s.white.sorted() }

// Blacklist returns the blacklist entries in sorted order.
func (s Spec) Blacklist() []string { return s.black.sorted() }

// PassesWhitelist is true when the whitelist is empty or contains the
// file's extension or basename.
func (s Spec) PassesWhitelist(name string) bool {
	return s.white.empty() || s.white.contains(path.Base(name))
}

// PassesBlacklist is false when the blacklist contains the file's
// extension or basename.
func (s Spec) PassesBlacklist(name string) bool {
	return s.black.empty() || !s.black.contains(path.Base(name))
}

// Select applies the whitelist, then the blacklist.
func (s Spec) Select(name string) bool {
	return s.PassesWhitelist(name) && s.PassesBlacklist(name)
}

func (l list) sorted() []string {
	out := make([]string, 0, len(l.names))
	for name := range l.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
