package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	LogLevel       string
	LogFile        string
	HistoryDepth   int
	ANSICodePage   string
	SniffANSI      bool
	KeepBlankLines bool
	SettingsFile   string
	Language       string
}

func Load() Config {
	depth, _ := strconv.Atoi(getenv("HISTORY_DEPTH", "50"))
	sniff, _ := strconv.ParseBool(getenv("SNIFF_ANSI", "false"))
	keep, _ := strconv.ParseBool(getenv("KEEP_BLANK_LINES", "false"))
	return Config{
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFile:        getenv("LOG_FILE", "logs/csvedit.log"),
		HistoryDepth:   depth,
		ANSICodePage:   getenv("ANSI_CODEPAGE", "windows-1252"),
		SniffANSI:      sniff,
		KeepBlankLines: keep,
		SettingsFile:   getenv("SETTINGS_FILE", defaultSettingsFile()),
		Language:       getenv("LANGUAGE", "en"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// defaultSettingsFile is csvedit/csvedit.toml under the user config
// directory, or the working directory when there is none.
func defaultSettingsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "csvedit.toml"
	}
	return filepath.Join(dir, "csvedit", "csvedit.toml")
}
