package ignore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bethropolis/dir-concat/internal/pattern"
	"github.com/bethropolis/dir-concat/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

// New creates a Registry rooted at rootDir. No scope is active until the
// first call to Enter.
func New(rootDir string, opts ...Option) (*Registry, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	r := &Registry{
		rootDir:  absRootDir,
		fileName: DefaultFileName,
		logger:   &utils.NoopLogger{},
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.init(); err != nil {
		return nil, err
	}

	return r, nil
}

// init compiles the custom rules into a base scope and loads the global
// excludes file.
func (r *Registry) init() error {
	r.logger.Debug("ignore.New: Initializing for root: %s", r.rootDir)
	r.logger.Debug("ignore.New: ignore file %q, hidden=%v", r.fileName, r.ignoreHidden)

	if r.disabled {
		r.logger.Debug("ignore.New: Registry is disabled, only VCS directories are ignored")
		return nil
	}

	if len(r.customRules) > 0 {
		base := &Scope{dir: ""}
		for _, line := range r.customRules {
			if pattern.IsComment(line) {
				continue
			}
			rule, err := pattern.Compile(line, "")
			if err != nil {
				r.logger.Warn("Dropping custom ignore pattern %q: %v", line, err)
				continue
			}
			base.rules = append(base.rules, rule)
		}
		r.current = base
		r.logger.Debug("ignore.New: %d custom rules active", len(base.rules))
	}

	if r.excludesFile != "" {
		excludes, err := loadExcludes(r.excludesFile, r.rootDir, r.logger)
		if err != nil {
			return fmt.Errorf("ignore: failed to load excludes file: %w", err)
		}
		r.excludes = excludes
	}

	return nil
}

// loadExcludes parses a global excludes file with paths resolved against root.
func loadExcludes(path, root string, logger utils.Logger) (gitignore.GitIgnore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	excludes := gitignore.New(f, root, func(e gitignore.Error) bool {
		logger.Warn("Ignoring malformed pattern in %s: %v", path, e)
		return true
	})
	logger.Debug("ignore.New: Loaded excludes file %s", path)
	return excludes, nil
}
