// Package walker handles directory traversal and file selection
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/bethropolis/dir-concat/internal/filter"
	"github.com/bethropolis/dir-concat/internal/ignore"
)

// walkState carries the per-walk collaborators down the recursion.
type walkState struct {
	root     string
	registry *ignore.Registry
	spec     filter.Spec
	options  WalkOptions
	tracker  *SkippedTracker
	excluded map[string]os.FileInfo
	stats    ProgressStats
	selected []string
}

// Walk traverses the tree under rootDir depth-first, visiting entries of
// each directory in name order. Ignored directories are not descended into.
// Files that survive the ignore rules are kept when spec selects them.
// It returns the selection, the skipped items and any error that stopped
// the walk.
func Walk(rootDir string, registry *ignore.Registry, spec filter.Spec, opts ...Option) (Selection, []SkippedItem, error) {
	startTime := time.Now()

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return Selection{}, nil, fmt.Errorf("walker: failed to get absolute path for '%s': %w", rootDir, err)
	}

	st := &walkState{
		root:     absRootDir,
		registry: registry,
		spec:     spec,
		options:  options,
		tracker:  NewSkippedTracker(64),
		excluded: make(map[string]os.FileInfo, len(options.Excluded)),
	}
	for _, p := range options.Excluded {
		// A path that does not exist yet can only match by name
		info, _ := os.Stat(p)
		st.excluded[filepath.Clean(p)] = info
	}

	options.Logger.Debug("walker.Walk started. Root: %s", absRootDir)

	entries, err := os.ReadDir(absRootDir)
	if err != nil {
		return Selection{Root: absRootDir}, nil, fmt.Errorf("walker: failed to read root directory '%s': %w", absRootDir, err)
	}
	err = st.walkEntries("", entries)

	options.Logger.Debug("Walker: Total walk time: %s", time.Since(startTime))

	return Selection{Root: absRootDir, Paths: st.selected}, st.tracker.Items(), err
}

// walkDir lists and processes one non-root directory.
func (st *walkState) walkDir(relDir string) error {
	if err := st.options.Context.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(st.abs(relDir))
	if err != nil {
		reason := ReasonSkippedWalkError
		if os.IsPermission(err) {
			reason = ReasonSkippedPermError
		}
		st.options.Logger.Warn("Skipping directory '%s': %v", relDir, err)
		st.tracker.Track(relDir, reason, true)
		st.stats.SkippedDirs++
		return nil
	}

	return st.walkEntries(relDir, entries)
}

// walkEntries processes the entries of relDir inside its ignore scope.
func (st *walkState) walkEntries(relDir string, entries []fs.DirEntry) error {
	if st.registry != nil {
		st.registry.Enter(relDir)
		defer st.registry.Leave()
	}

	for _, entry := range entries {
		rel := path.Join(relDir, entry.Name())
		isDir, regular := st.classify(rel, entry)

		if isDir {
			st.stats.TotalDirs++
		} else {
			st.stats.TotalFiles++
		}

		if ignore.IsIgnored(st.registry, rel, isDir) {
			st.options.Logger.Debug("Walker: Ignored %q by rules", rel)
			st.skip(rel, ReasonIgnoredRule, isDir)
			continue
		}

		if isDir {
			if err := st.walkDir(rel); err != nil {
				return err
			}
			continue
		}

		if !regular {
			st.skip(rel, ReasonSkippedNotRegular, false)
			continue
		}

		if st.isExcluded(rel) {
			st.options.Logger.Debug("Walker: Skipped output file %q", rel)
			st.skip(rel, ReasonSkippedOutput, false)
			continue
		}

		switch {
		case !st.spec.PassesWhitelist(rel):
			st.skip(rel, ReasonFilteredWhitelist, false)
		case !st.spec.PassesBlacklist(rel):
			st.skip(rel, ReasonFilteredBlacklist, false)
		default:
			st.options.Logger.Debug("Walker: Selected %q", rel)
			st.selected = append(st.selected, rel)
			st.stats.SelectedFiles++
		}
	}

	if st.options.ProgressFn != nil {
		st.stats.CurrentDir = relDir
		st.options.ProgressFn(st.stats)
	}

	return nil
}

// classify reports whether the entry is walked as a directory and whether it
// is a regular file. Symlinks are resolved for files only; a link to a
// directory is neither, so loops cannot form.
func (st *walkState) classify(rel string, entry fs.DirEntry) (isDir, regular bool) {
	mode := entry.Type()
	switch {
	case mode.IsDir():
		return true, false
	case mode.IsRegular():
		return false, true
	case mode&fs.ModeSymlink != 0:
		info, err := os.Stat(st.abs(rel))
		if err != nil {
			st.options.Logger.Debug("Walker: Broken symlink %q: %v", rel, err)
			return false, false
		}
		return false, info.Mode().IsRegular()
	default:
		return false, false
	}
}

// isExcluded matches rel against the excluded paths, by name first and then
// by file identity so a symlinked or differently spelled path is caught too.
func (st *walkState) isExcluded(rel string) bool {
	if len(st.excluded) == 0 {
		return false
	}
	abs := st.abs(rel)
	if _, ok := st.excluded[abs]; ok {
		return true
	}
	info, err := os.Stat(abs)
	if err != nil {
		return false
	}
	for _, other := range st.excluded {
		if other != nil && os.SameFile(info, other) {
			return true
		}
	}
	return false
}

func (st *walkState) skip(rel string, reason SkippedReason, isDir bool) {
	st.tracker.Track(rel, reason, isDir)
	if isDir {
		st.stats.SkippedDirs++
	} else {
		st.stats.SkippedFiles++
	}
}

func (st *walkState) abs(rel string) string {
	return filepath.Join(st.root, filepath.FromSlash(rel))
}
