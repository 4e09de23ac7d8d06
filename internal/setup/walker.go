// Package setup provides initialization and configuration functions
package setup

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bethropolis/dir-concat/internal/filter"
	"github.com/bethropolis/dir-concat/internal/ignore"
	"github.com/bethropolis/dir-concat/internal/utils"
	"github.com/bethropolis/dir-concat/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// WalkerConfig holds all parameters needed to configure a directory walk
type WalkerConfig struct {
	RootDir        string
	White          string
	Black          string
	IgnoreFileName string
	CustomIgnore   string
	ExcludesFile   string
	SkipHidden     bool
	NoIgnore       bool
	ShowProgress   bool
	ProgressOut    io.Writer // Defaults to os.Stderr
	ExcludedPaths  []string
	Context        context.Context
	Quiet          bool
	Logger         utils.Logger
}

// ConfigureWalker builds the ignore registry, the filter spec and the walk
// options described by cfg.
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) (
	*ignore.Registry,
	filter.Spec,
	[]walker.Option,
	error,
) {
	// --- Parse custom ignore patterns ---
	customPatterns := filter.ParseList(cfg.CustomIgnore)
	if len(customPatterns) > 0 {
		infoLog("Using custom ignore patterns: %v", customPatterns)
	}

	// --- Parse whitelist / blacklist ---
	spec := filter.New(filter.ParseList(cfg.White), filter.ParseList(cfg.Black))
	if white := spec.Whitelist(); len(white) > 0 {
		infoLog("Whitelist: %s", strings.Join(white, ", "))
	} else {
		infoLog("No whitelist (including all file types).")
	}
	if black := spec.Blacklist(); len(black) > 0 {
		infoLog("Blacklist: %s", strings.Join(black, ", "))
	}

	if cfg.SkipHidden {
		infoLog("Ignoring hidden files/directories (starting with '.').")
	}
	if cfg.NoIgnore {
		infoLog("Not reading %s files.", cfg.IgnoreFileName)
	}

	// --- Initialize ignore registry ---
	registry, err := ignore.NewFromConfig(ignore.Config{
		RootDir:      cfg.RootDir,
		FileName:     cfg.IgnoreFileName,
		ExcludesFile: cfg.ExcludesFile,
		IgnoreHidden: cfg.SkipHidden,
		CustomRules:  customPatterns,
		Logger:       cfg.Logger,
		Disabled:     cfg.NoIgnore,
	})
	if err != nil {
		return nil, filter.Spec{}, nil, fmt.Errorf("error initializing ignore rules: %w", err)
	}

	// --- Set up walk options ---
	walkOptions := []walker.Option{walker.WithLogger(cfg.Logger)}

	if len(cfg.ExcludedPaths) > 0 {
		walkOptions = append(walkOptions, walker.WithExcludedPaths(cfg.ExcludedPaths...))
	}

	if cfg.ShowProgress && !cfg.Quiet {
		out := cfg.ProgressOut
		if out == nil {
			out = os.Stderr
		}
		walkOptions = append(walkOptions, walker.WithProgress(func(stats walker.ProgressStats) {
			dir := stats.CurrentDir
			if dir == "" {
				dir = "."
			}
			if len(dir) > 40 {
				dir = "..." + dir[len(dir)-37:]
			}
			// Carriage return overwrites the previous status line
			fmt.Fprintf(out, "\rScanning: %-40s | Selected: %d/%d | Dirs: %d",
				dir, stats.SelectedFiles, stats.TotalFiles, stats.TotalDirs)
			if stats.CurrentDir == "" {
				fmt.Fprintln(out)
			}
		}))
	}

	if cfg.Context != nil {
		walkOptions = append(walkOptions, walker.WithContext(cfg.Context))
	}

	return registry, spec, walkOptions, nil
}
