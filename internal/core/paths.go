package core

import (
	"os"
	"path/filepath"
)

// Paths holds the locations of all files replkit keeps on disk.
// Everything lives under a single data directory, by default ~/.replkit,
// overridable through the REPLKIT_HOME environment variable.
type Paths struct {
	HomeDir         string
	DataDir         string
	LogFile         string
	ConfigFile      string
	HistoryFile     string
	HistoryTextFile string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths != nil {
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	dataDir := os.Getenv("REPLKIT_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".replkit")
	}

	defaultPaths = &Paths{
		HomeDir:         homeDir,
		DataDir:         dataDir,
		LogFile:         filepath.Join(dataDir, "replkit.log"),
		ConfigFile:      filepath.Join(dataDir, "config.yaml"),
		HistoryFile:     filepath.Join(dataDir, "history.db"),
		HistoryTextFile: filepath.Join(dataDir, "history"),
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		panic(err)
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

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

func HistoryFile() string {
	ensureDefaultPaths()
	return defaultPaths.HistoryFile
}

// HistoryTextFile is the flat, one-command-per-line history file used for
// import/export. Any text file can serve as one.
func HistoryTextFile() string {
	ensureDefaultPaths()
	return defaultPaths.HistoryTextFile
}

// ExpandUser replaces a leading ~ in path with the user's home directory.
// Paths without a leading tilde are returned unchanged.
func ExpandUser(path string) string {
	if path == "~" {
		return HomeDir()
	}
	if len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator) {
		return filepath.Join(HomeDir(), path[2:])
	}
	return path
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
