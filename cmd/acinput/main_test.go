package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/robottwo/acinput/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFilterFromReader(t *testing.T) {
	pool := []string{"apple", "apricot", "banana", "grape"}

	var out bytes.Buffer
	err := filterFromReader(strings.NewReader("ap\na\nxyz\nan\n"), &out, pool)
	require.NoError(t, err)

	assert.Equal(t, "apple\napricot\ngrape\nbanana\n", out.String())
}

func TestPrintHistory(t *testing.T) {
	historyManager, err := history.NewHistoryManager(":memory:")
	require.NoError(t, err)

	_, err = historyManager.RecordCommit("Gfap", "s")
	require.NoError(t, err)
	_, err = historyManager.RecordCommit("Pcp4", "s")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printHistory(&out, historyManager, 10, 0))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Pcp4")
	assert.Contains(t, lines[0], "now")
	assert.Contains(t, lines[1], "Gfap")
}

func TestWithRecentValues(t *testing.T) {
	historyManager, err := history.NewHistoryManager(":memory:")
	require.NoError(t, err)

	_, err = historyManager.RecordCommit("Sst", "s")
	require.NoError(t, err)
	_, err = historyManager.RecordCommit("Gfap", "s")
	require.NoError(t, err)

	pool, err := withRecentValues([]string{"Gfap", "Pcp4"}, historyManager, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gfap", "Pcp4", "Sst"}, pool)
}

func TestPrintHistorySince(t *testing.T) {
	historyManager, err := history.NewHistoryManager(":memory:")
	require.NoError(t, err)

	_, err = historyManager.RecordCommit("Gfap", "s")
	require.NoError(t, err)
	_, err = historyManager.RecordCommit("Pcp4", "s")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printHistory(&out, historyManager, 1, time.Hour))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2, "the window ignores the limit")
	assert.Contains(t, lines[0], "Gfap", "entries within the window are oldest first")
	assert.Contains(t, lines[1], "Pcp4")
}

func TestMergeHistoryOnReloadLogsFailure(t *testing.T) {
	historyManager, err := history.NewHistoryManager(":memory:")
	require.NoError(t, err)
	_, err = historyManager.RecordCommit("Sst", "s")
	require.NoError(t, err)

	observed, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(observed)

	pool := mergeHistoryOnReload([]string{"Gfap"}, historyManager, 10, logger)
	assert.Equal(t, []string{"Gfap", "Sst"}, pool)
	assert.Equal(t, 0, logs.Len())

	require.NoError(t, historyManager.Close())

	pool = mergeHistoryOnReload([]string{"Gfap"}, historyManager, 10, logger)
	assert.Equal(t, []string{"Gfap"}, pool)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "failed to merge history into reloaded completions", logs.All()[0].Message)
}
