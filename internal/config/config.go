package config

import (
	"os"
	"time"

	"github.com/bethropolis/dir-concat/internal/ignore"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	RootDir string

	// Output settings
	OutputFile string
	ListFiles  bool
	DryRun     bool
	Format     string

	// Logging settings
	Verbose     bool
	Quiet       bool
	LogLevel    string
	NoColor     bool
	UseColors   bool
	ShowSkipped bool

	// Processing settings
	MaxFileSizeMB int64
	ShowProgress  bool
	Timeout       time.Duration

	// Filtering settings
	White          string
	Black          string
	IgnoreFileName string
	CustomIgnore   string
	ExcludesFile   string
	SkipHidden     bool
	NoIgnore       bool

	Version string
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		RootDir:        ".",
		Format:         "plain",
		IgnoreFileName: ignore.DefaultFileName,
		Version:        Version,
	}
}

// BindFlags registers the command-line flags on fs, writing into c.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.OutputFile, "out", "o", c.OutputFile, "Write concatenated content to this file instead of stdout")
	fs.BoolVarP(&c.ListFiles, "list-files", "l", c.ListFiles, "Also list the selected files")
	fs.BoolVarP(&c.DryRun, "dryrun", "n", c.DryRun, "Only report which files would be read; read and write nothing")
	fs.StringVarP(&c.White, "white", "w", c.White, "Comma-separated extensions and file names to include")
	fs.StringVarP(&c.Black, "black", "b", c.Black, "Comma-separated extensions and file names to exclude")
	fs.StringVar(&c.Format, "format", c.Format, "Output format: plain, markdown or json")

	fs.StringVar(&c.IgnoreFileName, "ignore-file", c.IgnoreFileName, "Name of the per-directory ignore file")
	fs.StringVar(&c.CustomIgnore, "ignore", c.CustomIgnore, "Extra ignore patterns for the whole tree (comma-separated, gitignore syntax)")
	fs.StringVar(&c.ExcludesFile, "exclude-from", c.ExcludesFile, "Global excludes file, used when no ignore file rule matches")
	fs.BoolVar(&c.SkipHidden, "skip-hidden", c.SkipHidden, "Ignore files and directories starting with '.'")
	fs.BoolVar(&c.NoIgnore, "no-ignore", c.NoIgnore, "Do not read ignore files (VCS directories stay excluded)")

	fs.Int64Var(&c.MaxFileSizeMB, "max-size", c.MaxFileSizeMB, "Skip files larger than this many MB (0 = no limit)")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Maximum traversal time (e.g. '30s', '5m')")
	fs.BoolVar(&c.ShowProgress, "progress", c.ShowProgress, "Show progress information on stderr")
	fs.BoolVar(&c.ShowSkipped, "show-skipped", c.ShowSkipped, "Show skipped files/directories and reasons at the end")

	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Enable verbose logging")
	fs.BoolVarP(&c.Quiet, "quiet", "q", c.Quiet, "Suppress INFO messages (only show WARN, ERROR)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Set the logging level (DEBUG, INFO, WARN, ERROR, NONE)")
	fs.BoolVar(&c.NoColor, "no-color", c.NoColor, "Disable color output")
}

// Finalize applies positional arguments and derives settings that depend
// on the environment.
func (c *Config) Finalize(args []string) {
	if len(args) > 0 && args[0] != "" {
		c.RootDir = args[0]
	}

	// Colored headers only make sense on a terminal
	c.UseColors = !c.NoColor && c.OutputFile == "" && isatty.IsTerminal(os.Stdout.Fd())
}

// StderrColors reports whether log prefixes should be colored.
func (c *Config) StderrColors() bool {
	return !c.NoColor && isatty.IsTerminal(os.Stderr.Fd())
}

// MaxFileSize returns the size limit in bytes, 0 for none.
func (c *Config) MaxFileSize() int64 {
	if c.MaxFileSizeMB <= 0 {
		return 0
	}
	return c.MaxFileSizeMB * 1024 * 1024
}
