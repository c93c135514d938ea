package bash

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/interp"
)

func newRunner(t *testing.T) *interp.Runner {
	t.Helper()
	runner, err := interp.New(
		interp.StdIO(nil, nil, nil),
		interp.CallHandler(SetBuiltinHandler()),
	)
	require.NoError(t, err)
	return runner
}

func TestRunBashScriptFromReader(t *testing.T) {
	runner := newRunner(t)

	err := RunBashScriptFromReader(context.Background(), runner, strings.NewReader(`
ACINPUT_TITLE="Gene:"
ACINPUT_WIDTH=$((20 + 10))
`), "test")
	require.NoError(t, err)

	assert.Equal(t, "Gene:", runner.Vars["ACINPUT_TITLE"].String())
	assert.Equal(t, "30", runner.Vars["ACINPUT_WIDTH"].String())
}

func TestRunBashScriptFromReaderSyntaxError(t *testing.T) {
	runner := newRunner(t)

	err := RunBashScriptFromReader(context.Background(), runner, strings.NewReader("if then fi ("), "broken")
	assert.Error(t, err)
}

func TestRunBashScriptFromFile(t *testing.T) {
	runner := newRunner(t)

	path := filepath.Join(t.TempDir(), ".acinputrc")
	require.NoError(t, os.WriteFile(path, []byte("ACINPUT_LOG_LEVEL=debug\n"), 0644))

	require.NoError(t, RunBashScriptFromFile(context.Background(), runner, path))
	assert.Equal(t, "debug", runner.Vars["ACINPUT_LOG_LEVEL"].String())

	err := RunBashScriptFromFile(context.Background(), runner, filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSetBuiltinHandler(t *testing.T) {
	runner := newRunner(t)
	defer func() {
		exitOnError = false
	}()

	require.NoError(t, RunBashScriptFromReader(context.Background(), runner, strings.NewReader("set -e"), "test"))
	assert.True(t, ShouldExitOnError())

	require.NoError(t, RunBashScriptFromReader(context.Background(), runner, strings.NewReader("set +e"), "test"))
	assert.False(t, ShouldExitOnError())
}

func TestSetEAbortsOnFailingCommand(t *testing.T) {
	runner := newRunner(t)
	defer func() {
		exitOnError = false
	}()

	err := RunBashScriptFromReader(context.Background(), runner, strings.NewReader(`
set -e
false
ACINPUT_TITLE="unreached"
`), "test")

	assert.Error(t, err)
	assert.True(t, ShouldExitOnError())
	assert.Equal(t, "", runner.Vars["ACINPUT_TITLE"].String())
}
