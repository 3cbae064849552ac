package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/initcard/lettuce/internal/branding"
	"github.com/initcard/lettuce/internal/userdata"
)

const fileType = "yaml"

// Setting keys.
const (
	KeyManifest   = "manifest"
	KeyVersion    = "version"
	KeyProjectDir = "project_dir"
	KeySceneFile  = "scene_file"
	KeyLogLevel   = "log_level"
	KeyCacheSize  = "cache_size"
)

// Keys lists every setting config set accepts.
var Keys = []string{KeyManifest, KeyVersion, KeyProjectDir, KeySceneFile, KeyLogLevel, KeyCacheSize}

// Settings is the resolved configuration.
type Settings struct {
	Manifest   string `json:"manifest"`    // character manifest XML
	Version    string `json:"version"`     // manifest schema version the project uses
	ProjectDir string `json:"project_dir"` // root that relative manifest paths resolve against
	SceneFile  string `json:"scene_file"`  // scene snapshot exported by the host
	LogLevel   string `json:"log_level"`
	CacheSize  int    `json:"cache_size"`
}

// Dir returns the path to the lettuce home directory (~/.lettuce/).
func Dir() string {
	root, err := userdata.Root()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return root
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), userdata.ConfigFile)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment and
// returns the resolved settings.
func Load() Settings {
	// A missing .env is normal.
	_ = godotenv.Load()

	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyVersion, branding.ManifestVersion())
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyCacheSize, 256)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()

	return Current()
}

// Current returns the settings as viper sees them now.
func Current() Settings {
	return Settings{
		Manifest:   viper.GetString(KeyManifest),
		Version:    viper.GetString(KeyVersion),
		ProjectDir: viper.GetString(KeyProjectDir),
		SceneFile:  viper.GetString(KeySceneFile),
		LogLevel:   viper.GetString(KeyLogLevel),
		CacheSize:  viper.GetInt(KeyCacheSize),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
