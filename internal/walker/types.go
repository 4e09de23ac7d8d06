// Package walker handles directory traversal and file selection
package walker

import (
	"path"
	"path/filepath"
)

// Selection is the ordered list of selected files of one walk.
type Selection struct {
	Root  string   // Absolute root directory
	Paths []string // Slash-separated paths relative to Root, in visit order
}

// Len returns the number of selected files.
func (s Selection) Len() int {
	return len(s.Paths)
}

// Abs returns the absolute filesystem path of the i-th selected file.
func (s Selection) Abs(i int) string {
	return filepath.Join(s.Root, filepath.FromSlash(s.Paths[i]))
}

// ProgressFunc receives walk statistics after each directory.
type ProgressFunc func(stats ProgressStats)

// ProgressStats holds statistics about the walk progress
type ProgressStats struct {
	TotalFiles    int64  // Files seen
	SelectedFiles int64  // Files that passed all filters
	SkippedFiles  int64  // Files that were skipped for any reason
	TotalDirs     int64  // Directories seen
	SkippedDirs   int64  // Directories that were skipped
	CurrentDir    string // Directory just finished (relative)
}

// SkippedReason clarifies why a file/directory was not selected.
type SkippedReason string

const (
	ReasonIgnoredRule       SkippedReason = "Ignored (Gitignore/Custom Rule)"
	ReasonFilteredWhitelist SkippedReason = "Filtered (Not in Whitelist)"
	ReasonFilteredBlacklist SkippedReason = "Filtered (Blacklisted)"
	ReasonSkippedNotRegular SkippedReason = "Skipped (Not a Regular File)"
	ReasonSkippedPermError  SkippedReason = "Skipped (Permission Error)"
	ReasonSkippedWalkError  SkippedReason = "Skipped (Walk Error)"
	ReasonSkippedOutput     SkippedReason = "Skipped (Output File)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker collects skipped items in visit order.
type SkippedTracker struct {
	items []SkippedItem
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(rel string, reason SkippedReason, isDir bool) {
	st.items = append(st.items, SkippedItem{Path: path.Clean(rel), Reason: reason, IsDir: isDir})
}

// Items returns the tracked skipped items
func (st *SkippedTracker) Items() []SkippedItem {
	return st.items
}
