package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bethropolis/dir-concat/internal/config"
	"github.com/bethropolis/dir-concat/internal/logger"
	"github.com/bethropolis/dir-concat/internal/printer"
	"github.com/bethropolis/dir-concat/internal/setup"
	"github.com/bethropolis/dir-concat/internal/summary"
	"github.com/bethropolis/dir-concat/internal/walker"
)

var (
	// ErrInvalidRoot is returned when the root directory is missing or not a directory.
	ErrInvalidRoot = errors.New("invalid root directory")
	// ErrOutput is returned when the output destination cannot be opened or written.
	ErrOutput = errors.New("output error")
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a new App writing content to stdout and diagnostics to stderr
func New(cfg *config.Config, stdout, stderr io.Writer) *App {
	log := logger.New(stderr, cfg.Verbose, cfg.StderrColors())

	// The explicit level overrides verbose/quiet
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return &App{
		cfg:    cfg,
		log:    log,
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Logger returns the application logger
func (a *App) Logger() *logger.Logger {
	return a.log
}

// Run executes one concatenation. Per-file problems are logged as warnings;
// only an invalid root or an unusable output destination make it fail.
func (a *App) Run(ctx context.Context) error {
	startTime := time.Now()

	infoLog := func(format string, args ...interface{}) {
		if !a.cfg.Quiet {
			a.log.Info(format, args...)
		}
	}

	format, err := printer.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}

	if a.log.VerboseMode {
		a.log.Debug("Directory: %s", a.cfg.RootDir)
		a.log.Debug("Output: %q, dry run: %v, list files: %v", a.cfg.OutputFile, a.cfg.DryRun, a.cfg.ListFiles)
		a.log.Debug("Max file size: %d MB", a.cfg.MaxFileSizeMB)
	}

	// --- Directory validation ---
	absRootDir, err := validateRoot(a.cfg.RootDir)
	if err != nil {
		return err
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	// --- Open output before walking so a bad path fails fast ---
	var (
		out     io.Writer = a.Stdout
		outFile *os.File
	)
	if a.cfg.OutputFile != "" && !a.cfg.DryRun {
		outFile, err = os.Create(a.cfg.OutputFile)
		if err != nil {
			return fmt.Errorf("%w: failed to create output file: %v", ErrOutput, err)
		}
		defer outFile.Close()
		out = outFile
	}

	registry, spec, walkOptions, err := setup.ConfigureWalker(setup.WalkerConfig{
		RootDir:        absRootDir,
		White:          a.cfg.White,
		Black:          a.cfg.Black,
		IgnoreFileName: a.cfg.IgnoreFileName,
		CustomIgnore:   a.cfg.CustomIgnore,
		ExcludesFile:   a.cfg.ExcludesFile,
		SkipHidden:     a.cfg.SkipHidden,
		NoIgnore:       a.cfg.NoIgnore,
		ShowProgress:   a.cfg.ShowProgress,
		ProgressOut:    a.Stderr,
		ExcludedPaths:  a.excludedPaths(),
		Context:        ctx,
		Quiet:          a.cfg.Quiet,
		Logger:         a.log,
	}, infoLog)
	if err != nil {
		return err
	}

	// --- Walk ---
	infoLog("Scanning directory: %s", absRootDir)
	selection, skippedItems, err := walker.Walk(absRootDir, registry, spec, walkOptions...)
	if err != nil {
		return fmt.Errorf("directory walk failed: %w", err)
	}

	// --- Assemble ---
	if !a.cfg.DryRun {
		if err := a.assemble(selection, out, format); err != nil {
			return err
		}
	}

	if a.cfg.ListFiles || a.cfg.DryRun {
		if err := printer.PrintList(a.listWriter(), selection.Paths, a.cfg.DryRun); err != nil {
			return fmt.Errorf("%w: %v", ErrOutput, err)
		}
	}

	if outFile != nil {
		if err := outFile.Close(); err != nil {
			return fmt.Errorf("%w: failed to close output file: %v", ErrOutput, err)
		}
	}

	summary.DisplayResults(a.log, selection.Len(), a.log.Warnings(), time.Since(startTime), a.cfg.Quiet)
	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, skippedItems, a.Stderr, a.cfg.Quiet)
	}

	return nil
}

// assemble writes every selected file to out. Files that vanished or cannot
// be read are skipped with a warning.
func (a *App) assemble(selection walker.Selection, out io.Writer, format printer.Format) error {
	p := printer.New().
		WithOutput(out).
		WithFormat(format).
		WithColors(a.cfg.UseColors && format == printer.FormatPlain)

	for i, rel := range selection.Paths {
		content, err := printer.ReadContent(selection.Abs(i), a.cfg.MaxFileSize(), a.log)
		if err != nil {
			a.log.Warn("Skipping file '%s': %v", rel, err)
			continue
		}
		if err := p.PrintFile(rel, content); err != nil {
			return fmt.Errorf("%w: %v", ErrOutput, err)
		}
	}

	if err := p.Finalize(); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}
	a.log.Debug("Printed %d files", p.GetCount())
	return nil
}

// excludedPaths keeps the output file out of its own content when it is
// written inside the root directory.
func (a *App) excludedPaths() []string {
	if a.cfg.OutputFile == "" {
		return nil
	}
	return []string{a.cfg.OutputFile}
}

// listWriter keeps the listing out of the content stream: it goes to stderr
// when content is written to stdout.
func (a *App) listWriter() io.Writer {
	if a.cfg.DryRun || a.cfg.OutputFile != "" {
		return a.Stdout
	}
	return a.Stderr
}

func validateRoot(rootDir string) (string, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("%w: '%s': %v", ErrInvalidRoot, rootDir, err)
	}

	dirInfo, err := os.Stat(absRootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: '%s' not found", ErrInvalidRoot, absRootDir)
		}
		return "", fmt.Errorf("%w: could not access '%s': %v", ErrInvalidRoot, absRootDir, err)
	}
	if !dirInfo.IsDir() {
		return "", fmt.Errorf("%w: '%s' is not a directory", ErrInvalidRoot, absRootDir)
	}
	return absRootDir, nil
}
