package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/initcard/lettuce/internal/branding"
)

// Directory and file names under the home directory.
const (
	LogsDir     = "logs"
	JournalsDir = "journals"
	ConfigFile  = "config.yaml"
	LogFile     = "lettuce.log"
)

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// Root returns the lettuce home directory. It checks the LETTUCE_HOME
// environment variable first, then falls back to ~/.lettuce.
func Root() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetLogsDir returns the path to the logs/ directory.
func GetLogsDir() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, LogsDir), nil
}

// GetLogPath returns the path to the log file.
func GetLogPath() (string, error) {
	dir, err := GetLogsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFile), nil
}

// GetJournalsDir returns the path to the journals/ directory where recorded
// host journals are saved when no output file is given.
func GetJournalsDir() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, JournalsDir), nil
}

// GetConfigPath returns the path to config.yaml.
func GetConfigPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ConfigFile), nil
}
