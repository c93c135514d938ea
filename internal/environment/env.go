package environment

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
	"mvdan.cc/sh/v3/interp"
)

const (
	DEFAULT_HISTORY_LIMIT = 20
)

func GetLogLevel(runner *interp.Runner) zap.AtomicLevel {
	logLevel, err := zap.ParseAtomicLevel(runner.Vars["ACINPUT_LOG_LEVEL"].String())
	if err != nil {
		logLevel = zap.NewAtomicLevel()
	}
	return logLevel
}

func ShouldCleanLogFile(runner *interp.Runner) bool {
	cleanLogFile := strings.ToLower(runner.Vars["ACINPUT_CLEAN_LOG_FILE"].String())
	return cleanLogFile == "1" || cleanLogFile == "true"
}

// GetCompletionsFile returns the candidate pool file configured in the rc
// file, or an empty string when none is set.
func GetCompletionsFile(runner *interp.Runner) string {
	return strings.TrimSpace(runner.Vars["ACINPUT_COMPLETIONS_FILE"].String())
}

func GetTitle(runner *interp.Runner) string {
	return runner.Vars["ACINPUT_TITLE"].String()
}

// GetWidth returns the widget width in cells. Zero means unbounded.
func GetWidth(runner *interp.Runner, logger *zap.Logger) int {
	raw := runner.Vars["ACINPUT_WIDTH"].String()
	if raw == "" {
		return 0
	}

	width, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || width < 0 {
		logger.Debug("error parsing ACINPUT_WIDTH", zap.String("value", raw), zap.Error(err))
		return 0
	}
	return int(width)
}

func GetHistoryLimit(runner *interp.Runner, logger *zap.Logger) int {
	historyLimit, err := strconv.ParseInt(
		runner.Vars["ACINPUT_HISTORY_LIMIT"].String(), 10, 32)
	if err != nil {
		logger.Debug("error parsing ACINPUT_HISTORY_LIMIT", zap.Error(err))
		historyLimit = DEFAULT_HISTORY_LIMIT
	}
	return int(historyLimit)
}
