package core

import (
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir     string
	DataDir     string
	LogFile     string
	HistoryFile string
	RcFile      string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		dataDir := filepath.Join(homeDir, ".local", "share", "acinput")
		defaultPaths = &Paths{
			HomeDir:     homeDir,
			DataDir:     dataDir,
			LogFile:     filepath.Join(dataDir, "acinput.log"),
			HistoryFile: filepath.Join(dataDir, "history.db"),
			RcFile:      filepath.Join(homeDir, ".acinputrc"),
		}

		err = os.MkdirAll(defaultPaths.DataDir, 0755)
		if err != nil {
			panic(err)
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func DataDir() string {
	ensureDefaultPaths()
	return defaultPaths.DataDir
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func HistoryFile() string {
	ensureDefaultPaths()
	return defaultPaths.HistoryFile
}

func RcFile() string {
	ensureDefaultPaths()
	return defaultPaths.RcFile
}
