package ignore

import (
	"github.com/bethropolis/dir-concat/internal/pattern"
	"github.com/bethropolis/dir-concat/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// DefaultFileName is the per-directory ignore file read by Enter.
const DefaultFileName = ".gitignore"

// vcsDirs are never walked, whatever the ignore files say.
var vcsDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
}

// Registry holds the stack of ignore scopes for one traversal.
type Registry struct {
	current *Scope

	// Global excludes file, consulted when no scope rule matches
	excludes gitignore.GitIgnore

	// Configuration
	rootDir      string
	fileName     string
	excludesFile string
	ignoreHidden bool
	customRules  []string
	logger       utils.Logger
	disabled     bool
}

// Scope is the set of rules active in one directory: its parent's rules
// followed by the rules of the directory's own ignore file.
type Scope struct {
	parent *Scope
	dir    string
	rules  []pattern.Rule
	depth  int
}

// Config holds configuration options for the registry
type Config struct {
	RootDir      string
	FileName     string
	ExcludesFile string
	IgnoreHidden bool
	CustomRules  []string
	Logger       utils.Logger
	Disabled     bool
}
