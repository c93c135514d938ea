package environment

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
)

func newRunner(t *testing.T) *interp.Runner {
	t.Helper()
	runner, err := interp.New(interp.Env(expand.ListEnviron(os.Environ()...)))
	require.NoError(t, err)
	if runner.Vars == nil {
		runner.Vars = make(map[string]expand.Variable)
	}
	return runner
}

func TestEnvironmentHelperFunctions(t *testing.T) {
	runner := newRunner(t)
	logger := zap.NewNop()

	logLevel := GetLogLevel(runner)
	assert.Equal(t, zap.InfoLevel, logLevel.Level())

	assert.False(t, ShouldCleanLogFile(runner))
	assert.Equal(t, "", GetCompletionsFile(runner))
	assert.Equal(t, "", GetTitle(runner))
	assert.Equal(t, 0, GetWidth(runner, logger))
	assert.Equal(t, DEFAULT_HISTORY_LIMIT, GetHistoryLimit(runner, logger))
}

func TestEnvironmentHelperFunctionsWithCustomValues(t *testing.T) {
	runner := newRunner(t)
	logger := zap.NewNop()

	runner.Vars["ACINPUT_LOG_LEVEL"] = expand.Variable{Kind: expand.String, Str: "debug"}
	runner.Vars["ACINPUT_CLEAN_LOG_FILE"] = expand.Variable{Kind: expand.String, Str: "TRUE"}
	runner.Vars["ACINPUT_COMPLETIONS_FILE"] = expand.Variable{Kind: expand.String, Str: " /tmp/genes.txt "}
	runner.Vars["ACINPUT_TITLE"] = expand.Variable{Kind: expand.String, Str: "Gene:"}
	runner.Vars["ACINPUT_WIDTH"] = expand.Variable{Kind: expand.String, Str: "40"}
	runner.Vars["ACINPUT_HISTORY_LIMIT"] = expand.Variable{Kind: expand.String, Str: "5"}

	assert.Equal(t, zap.DebugLevel, GetLogLevel(runner).Level())
	assert.True(t, ShouldCleanLogFile(runner))
	assert.Equal(t, "/tmp/genes.txt", GetCompletionsFile(runner))
	assert.Equal(t, "Gene:", GetTitle(runner))
	assert.Equal(t, 40, GetWidth(runner, logger))
	assert.Equal(t, 5, GetHistoryLimit(runner, logger))
}

func TestGetWidthInvalid(t *testing.T) {
	runner := newRunner(t)
	logger := zap.NewNop()

	for _, raw := range []string{"wide", "-3", "1.5"} {
		runner.Vars["ACINPUT_WIDTH"] = expand.Variable{Kind: expand.String, Str: raw}
		assert.Equal(t, 0, GetWidth(runner, logger), raw)
	}
}

func TestDynamicEnviron(t *testing.T) {
	t.Setenv("ACINPUT_TEST_SYSTEM", "system")
	t.Setenv("ACINPUT_TEST_SHADOWED", "system")

	env := NewDynamicEnviron()
	env.UpdateVar("ACINPUT_TEST_SHADOWED", "override")
	env.UpdateVar("ACINPUT_BUILD_VERSION", "dev")

	assert.Equal(t, "system", env.Get("ACINPUT_TEST_SYSTEM").String())
	assert.Equal(t, "override", env.Get("ACINPUT_TEST_SHADOWED").String())
	assert.Equal(t, "dev", env.Get("ACINPUT_BUILD_VERSION").String())

	seen := map[string]int{}
	env.Each(func(name string, vr expand.Variable) bool {
		seen[name]++
		return true
	})
	assert.Equal(t, 1, seen["ACINPUT_TEST_SHADOWED"], "shadowed variables are visited once")
	assert.Equal(t, 1, seen["ACINPUT_BUILD_VERSION"])
}
