package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gotest.tools/v3/fs"
)

// execute runs the root command with args and returns stdout and the logs.
func execute(t *testing.T, args ...string) (string, *observer.ObservedLogs, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	core, logs := observer.New(zapcore.DebugLevel)
	a := newApp()
	a.newLogger = func(bool) (*zap.Logger, error) {
		return zap.New(core), nil
	}

	cmd := a.rootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), logs, err
}

func newProject(t *testing.T) *fs.Dir {
	t.Helper()
	dir := fs.NewDir(t, "dirsize-cli",
		fs.WithFile(".gitignore", "# generated\n!dist/keep\n/dist\n"),
		fs.WithFile("a.txt", strings.Repeat("a", 500)),
		fs.WithFile("b.txt", strings.Repeat("b", 600)),
		fs.WithDir("dist", fs.WithFile("bundle.js", strings.Repeat("x", 2048))),
	)
	t.Cleanup(dir.Remove)
	return dir
}

// gitignoreLen is the size of the .gitignore written by newProject.
var gitignoreLen = len("# generated\n!dist/keep\n/dist\n")

func TestRoot_printsSize(t *testing.T) {
	dir := fs.NewDir(t, "dirsize-cli",
		fs.WithFile("a.txt", strings.Repeat("a", 500)),
		fs.WithFile("b.txt", strings.Repeat("b", 600)),
	)
	defer dir.Remove()

	out, _, err := execute(t, dir.Path())
	require.NoError(t, err)
	assert.Equal(t, "1.07 KB\n", out)
}

func TestRoot_gitignoreFlag(t *testing.T) {
	dir := newProject(t)

	for _, flag := range []string{"-g", "--gitignore"} {
		t.Run(flag, func(t *testing.T) {
			out, _, err := execute(t, flag, dir.Path())
			require.NoError(t, err)
			assert.Equal(t, "1.10 KB\n", out, "want %d bytes", 1100+gitignoreLen)
		})
	}

	t.Run("off by default", func(t *testing.T) {
		out, _, err := execute(t, dir.Path())
		require.NoError(t, err)
		assert.Equal(t, "3.10 KB\n", out, "want %d bytes", 1100+2048+gitignoreLen)
	})
}

func TestRoot_gitignoreFromEnv(t *testing.T) {
	dir := newProject(t)
	t.Setenv("DIRSIZE_GITIGNORE", "true")

	out, _, err := execute(t, dir.Path())
	require.NoError(t, err)
	assert.Equal(t, "1.10 KB\n", out)
}

func TestRoot_gitignoreFromConfigFile(t *testing.T) {
	dir := newProject(t)
	cfg := filepath.Join(t.TempDir(), "dirsize.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("gitignore: true\n"), 0o600))

	out, logs, err := execute(t, "--config", cfg, dir.Path())
	require.NoError(t, err)
	assert.Equal(t, "1.10 KB\n", out)
	assert.Equal(t, 1, logs.FilterMessage("using config file").Len())
}

func TestRoot_missingConfigFile(t *testing.T) {
	dir := newProject(t)

	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), dir.Path())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestRoot_warningsAreLogged(t *testing.T) {
	dir := fs.NewDir(t, "dirsize-cli",
		fs.WithFile(".gitignore", "[oops\n"),
		fs.WithFile("a.txt", "hello"),
	)
	defer dir.Remove()

	out, logs, err := execute(t, "-g", dir.Path())
	require.NoError(t, err)
	assert.Equal(t, "11.00 B\n", out)

	warned := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warned, 1)
	assert.Equal(t, "entry skipped", warned[0].Message)
	assert.Equal(t, "[oops", warned[0].ContextMap()["path"])
}

func TestRoot_debugSummary(t *testing.T) {
	dir := newProject(t)

	_, logs, err := execute(t, "--debug", "-g", dir.Path())
	require.NoError(t, err)

	finished := logs.FilterMessage("walk finished").All()
	require.Len(t, finished, 1)
	fields := finished[0].ContextMap()
	assert.EqualValues(t, 1100+gitignoreLen, fields["bytes"])
	assert.EqualValues(t, 1, fields["ignored"])
	if runtime.GOOS == "linux" {
		assert.Contains(t, fields, "fs_free_bytes")
		assert.Contains(t, fields, "fs_used_bytes")
	}
}

func TestRoot_errors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, _, err := execute(t, filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("no arguments", func(t *testing.T) {
		_, _, err := execute(t)
		require.Error(t, err)
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, _, err := execute(t, ".", ".")
		require.Error(t, err)
	})
}
