// Package pattern compiles gitignore-style pattern lines into rules that can
// be matched against slash-separated paths.
package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/danwakefield/fnmatch"
)

var (
	// ErrMalformed is returned for patterns with an unbalanced bracket expression.
	ErrMalformed = errors.New("pattern: malformed pattern")
	// ErrEmpty is returned for lines that leave nothing to match once the
	// negation and anchor markers are stripped.
	ErrEmpty = errors.New("pattern: empty pattern")
)

const doubleStar = "**"

// Rule is a single compiled ignore pattern.
type Rule struct {
	Pattern  string   // Original line, trimmed
	Negate   bool     // Line started with '!'
	DirOnly  bool     // Line ended with '/'
	Anchored bool     // Pattern is relative to Base rather than any depth
	Segments []string // Glob segments split on '/'
	Base     string   // Directory holding the ignore file, relative to the walk root ("" for the root)
}

// IsComment reports whether line carries no rule: blank lines and '#' comments.
func IsComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// Compile parses one ignore-file line. base is the slash path of the
// directory the line was read from, relative to the walk root.
func Compile(line, base string) (Rule, error) {
	p := trimTrailing(strings.TrimLeftFunc(line, unicode.IsSpace))
	rule := Rule{Pattern: p, Base: strings.Trim(base, "/")}

	switch {
	case strings.HasPrefix(p, `\#`), strings.HasPrefix(p, `\!`):
		p = p[1:]
	case strings.HasPrefix(p, "!"):
		rule.Negate = true
		p = p[1:]
	}

	if strings.HasSuffix(p, "/") {
		rule.DirOnly = true
		p = strings.TrimRight(p, "/")
	}
	if strings.HasPrefix(p, "/") {
		rule.Anchored = true
		p = strings.TrimLeft(p, "/")
	}
	if p == "" {
		return Rule{}, fmt.Errorf("%w: %q", ErrEmpty, line)
	}
	if strings.Contains(p, "/") {
		rule.Anchored = true
	}

	for _, seg := range strings.Split(p, "/") {
		if seg == "" {
			continue
		}
		if seg == doubleStar && len(rule.Segments) > 0 && rule.Segments[len(rule.Segments)-1] == doubleStar {
			continue
		}
		if !balanced(seg) {
			return Rule{}, fmt.Errorf("%w: %q", ErrMalformed, line)
		}
		rule.Segments = append(rule.Segments, seg)
	}

	return rule, nil
}

// Match reports whether rel (slash-separated, relative to the walk root)
// matches the rule. Negation is not applied here; callers read Negate.
func (r Rule) Match(rel string, isDir bool) bool {
	if r.DirOnly && !isDir {
		return false
	}

	rel = strings.Trim(rel, "/")
	if r.Base != "" {
		if !strings.HasPrefix(rel, r.Base+"/") {
			return false
		}
		rel = rel[len(r.Base)+1:]
	}
	if rel == "" {
		return false
	}

	parts := strings.Split(rel, "/")
	if !r.Anchored {
		return matchSegment(r.Segments[0], parts[len(parts)-1])
	}
	return matchSegments(r.Segments, parts)
}

// String returns the pattern as written.
func (r Rule) String() string {
	return r.Pattern
}

// Parse reads an ignore file body. Comment and blank lines are skipped;
// lines that fail to compile are reported with their 1-based line number
// and left out of the result.
func Parse(rd io.Reader, base string) ([]Rule, []error) {
	var (
		rules []Rule
		errs  []error
	)

	scanner := bufio.NewScanner(rd)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if IsComment(line) {
			continue
		}
		rule, err := Compile(line, base)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		errs = append(errs, err)
	}

	return rules, errs
}

func matchSegments(pat, parts []string) bool {
	for len(pat) > 0 {
		if pat[0] == doubleStar {
			// A trailing "**" matches everything inside, not the directory itself.
			if len(pat) == 1 {
				return len(parts) > 0
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(pat[1:], parts[i:]) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 || !matchSegment(pat[0], parts[0]) {
			return false
		}
		pat, parts = pat[1:], parts[1:]
	}
	return len(parts) == 0
}

func matchSegment(pat, name string) bool {
	return fnmatch.Match(pat, name, fnmatch.FNM_PATHNAME)
}

// trimTrailing strips trailing whitespace except a space escaped with '\'.
func trimTrailing(s string) string {
	for len(s) > 0 {
		c := s[len(s)-1]
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			break
		}
		if c == ' ' && len(s) > 1 && s[len(s)-2] == '\\' {
			break
		}
		s = s[:len(s)-1]
	}
	return s
}

// balanced reports whether every '[' in seg opens a closed bracket expression.
func balanced(seg string) bool {
	for i := 0; i < len(seg); i++ {
		switch seg[i] {
		case '\\':
			i++
		case '[':
			j := i + 1
			if j < len(seg) && (seg[j] == '!' || seg[j] == '^') {
				j++
			}
			// A ']' right after the opening is a literal member.
			if j < len(seg) && seg[j] == ']' {
				j++
			}
			for j < len(seg) && seg[j] != ']' {
				if seg[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(seg) {
				return false
			}
			i = j
		}
	}
	return true
}
