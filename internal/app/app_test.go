package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bethropolis/dir-concat/internal/config"
	"github.com/bethropolis/dir-concat/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func newTestApp(cfg *config.Config) (*App, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cfg.NoColor = true
	cfg.Quiet = true
	return New(cfg, &stdout, &stderr), &stdout, &stderr
}

func sampleTree(t *testing.T) string {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":    "build/\n*.log\n!important.log\n",
		"a.py":          "print('a')",
		"b.md":          "# b",
		"README.md":     "# readme",
		"build/out.py":  "ignored",
		"debug.log":     "noise",
		"important.log": "keep",
	})
	return root
}

func TestRun_ConcatenatesToStdout(t *testing.T) {
	cfg := config.New()
	cfg.RootDir = sampleTree(t)
	cfg.White = "py,md"
	cfg.Black = "README.md"

	a, stdout, stderr := newTestApp(cfg)
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, "a.py:\n\nprint('a')\n\nb.md:\n\n# b\n\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_WritesOutputFileAndListsOnStdout(t *testing.T) {
	cfg := config.New()
	cfg.RootDir = sampleTree(t)
	cfg.White = "log"
	cfg.ListFiles = true
	cfg.OutputFile = filepath.Join(t.TempDir(), "out.txt")

	a, stdout, _ := newTestApp(cfg)
	require.NoError(t, a.Run(context.Background()))

	written, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "important.log:\n\nkeep\n\n", string(written))
	assert.Equal(t, "Files read:\nimportant.log\n", stdout.String())
}

func TestRun_OutputInsideRootIsNotSelected(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt": "AAA",
		"z.txt": "ZZZ",
	})

	cfg := config.New()
	cfg.RootDir = root
	cfg.OutputFile = filepath.Join(root, "out.txt")
	cfg.ListFiles = true

	a, stdout, _ := newTestApp(cfg)
	require.NoError(t, a.Run(context.Background()))

	written, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "a.txt:\n\nAAA\n\nz.txt:\n\nZZZ\n\n", string(written))
	assert.Equal(t, "Files read:\na.txt\nz.txt\n", stdout.String())

	// A second run must not pick up the previous output either
	stdout.Reset()
	require.NoError(t, a.Run(context.Background()))
	written, err = os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Equal(t, "a.txt:\n\nAAA\n\nz.txt:\n\nZZZ\n\n", string(written))
}

func TestRun_RelativeOutputInsideRootIsNotSelected(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "AAA"})
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg := config.New()
	cfg.OutputFile = "all.txt"

	a, _, _ := newTestApp(cfg)
	require.NoError(t, a.Run(context.Background()))

	written, err := os.ReadFile(filepath.Join(root, "all.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a.txt:\n\nAAA\n\n", string(written))
}

func TestRun_DryRunDoesNotListStaleOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":   "AAA",
		"out.txt": "stale",
	})

	cfg := config.New()
	cfg.RootDir = root
	cfg.OutputFile = filepath.Join(root, "out.txt")
	cfg.DryRun = true

	a, stdout, _ := newTestApp(cfg)
	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, "Files to be read:\na.txt\n", stdout.String())
}

func TestRun_ProgressGoesToAppStderr(t *testing.T) {
	cfg := config.New()
	cfg.RootDir = sampleTree(t)
	cfg.ShowProgress = true

	a, _, stderr := newTestApp(cfg)
	a.cfg.Quiet = false
	a.log.WithLevel(logger.LevelWarn)
	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, stderr.String(), "\rScanning: ")
}

func TestRun_ListFilesGoesToStderrWithStdoutContent(t *testing.T) {
	cfg := config.New()
	cfg.RootDir = sampleTree(t)
	cfg.White = "py"
	cfg.ListFiles = true

	a, stdout, stderr := newTestApp(cfg)
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, "a.py:\n\nprint('a')\n\n", stdout.String())
	assert.Equal(t, "Files read:\na.py\n", stderr.String())
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	cfg := config.New()
	cfg.RootDir = sampleTree(t)
	cfg.DryRun = true
	cfg.ListFiles = true
	cfg.OutputFile = filepath.Join(t.TempDir(), "out.txt")

	a, stdout, _ := newTestApp(cfg)
	require.NoError(t, a.Run(context.Background()))

	_, err := os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(err), "dry run must not create the output file")
	assert.Equal(t, "Files to be read:\n.gitignore\nREADME.md\na.py\nb.md\nimportant.log\n", stdout.String())
}

func TestRun_ZeroFilesSelectedSucceeds(t *testing.T) {
	cfg := config.New()
	cfg.RootDir = sampleTree(t)
	cfg.White = "rs"

	a, stdout, _ := newTestApp(cfg)
	require.NoError(t, a.Run(context.Background()))
	assert.Empty(t, stdout.String())
}

func TestRun_InvalidRoot(t *testing.T) {
	cfg := config.New()
	cfg.RootDir = filepath.Join(t.TempDir(), "missing")

	a, _, _ := newTestApp(cfg)
	assert.ErrorIs(t, a.Run(context.Background()), ErrInvalidRoot)

	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg.RootDir = file
	assert.ErrorIs(t, a.Run(context.Background()), ErrInvalidRoot)
}

func TestRun_UnwritableOutput(t *testing.T) {
	cfg := config.New()
	cfg.RootDir = sampleTree(t)
	cfg.OutputFile = filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")

	a, _, _ := newTestApp(cfg)
	assert.ErrorIs(t, a.Run(context.Background()), ErrOutput)
}

func TestRun_UnknownFormat(t *testing.T) {
	cfg := config.New()
	cfg.RootDir = sampleTree(t)
	cfg.Format = "xml"

	a, _, _ := newTestApp(cfg)
	assert.Error(t, a.Run(context.Background()))
}

func TestRun_OversizedFileIsWarnedNotFatal(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"big.txt":   string(bytes.Repeat([]byte("x"), 2*1024*1024)),
		"small.txt": "ok",
	})

	cfg := config.New()
	cfg.RootDir = root
	cfg.MaxFileSizeMB = 1

	a, stdout, stderr := newTestApp(cfg)
	require.NoError(t, a.Run(context.Background()))

	assert.Equal(t, "small.txt:\n\nok\n\n", stdout.String())
	assert.Contains(t, stderr.String(), "Skipping file 'big.txt'")
	assert.Equal(t, int64(1), a.Logger().Warnings())
}

func TestRun_Idempotent(t *testing.T) {
	root := sampleTree(t)

	run := func() string {
		cfg := config.New()
		cfg.RootDir = root
		a, stdout, _ := newTestApp(cfg)
		require.NoError(t, a.Run(context.Background()))
		return stdout.String()
	}

	assert.Equal(t, run(), run())
}
