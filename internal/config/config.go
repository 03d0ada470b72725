// Package config resolves the application configuration from defaults, an optional config file, VIDEO_FETCHER_*
// environment variables and explicitly set command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/alanbriolat/video-fetcher"
)

const (
	AppName   = "video-fetcher"
	EnvPrefix = "VIDEO_FETCHER"
)

// Keys shared by the config file, environment variables and flag overrides.
const (
	KeyTarget        = "target"
	KeyFileTemplate  = "file_template"
	KeyProgressStyle = "progress_style"
	KeyHistoryDriver = "history_driver"
	KeyHistoryPath   = "history_path"
	KeyVerbose       = "verbose"
)

// Load builds a Config. If configFile is empty, config.{yaml,toml,json} is looked up in ConfigDir and is optional.
// overrides are applied last, keyed by the Key* constants.
func Load(configFile string, overrides map[string]any) (video_fetcher.Config, error) {
	v := viper.New()
	defaults := video_fetcher.DefaultConfig()
	v.SetDefault(KeyTarget, defaults.TargetDir)
	v.SetDefault(KeyFileTemplate, defaults.FileTemplate)
	v.SetDefault(KeyProgressStyle, string(defaults.ProgressStyle))
	v.SetDefault(KeyHistoryDriver, string(defaults.HistoryDriver))
	v.SetDefault(KeyHistoryPath, defaults.HistoryPath)
	v.SetDefault(KeyVerbose, defaults.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return video_fetcher.Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return video_fetcher.Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	config := video_fetcher.Config{
		TargetDir:     v.GetString(KeyTarget),
		FileTemplate:  v.GetString(KeyFileTemplate),
		ProgressStyle: video_fetcher.ProgressStyle(strings.ToLower(v.GetString(KeyProgressStyle))),
		HistoryDriver: video_fetcher.HistoryDriver(strings.ToLower(v.GetString(KeyHistoryDriver))),
		HistoryPath:   v.GetString(KeyHistoryPath),
		Verbose:       v.GetBool(KeyVerbose),
	}
	if err := config.Validate(); err != nil {
		return video_fetcher.Config{}, err
	}
	return config, nil
}

// ConfigDir is $XDG_CONFIG_HOME/video-fetcher or the platform equivalent.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// DataDir is $XDG_DATA_HOME/video-fetcher, falling back to ~/.local/share/video-fetcher, or ConfigDir on platforms
// without a separate data directory.
func DataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	if home, err := os.UserHomeDir(); err == nil && filepath.Separator == '/' {
		return filepath.Join(home, ".local", "share", AppName), nil
	}
	return ConfigDir()
}

// HistoryPath returns config.HistoryPath, or the default database file for the configured driver in DataDir.
func HistoryPath(config video_fetcher.Config) (string, error) {
	if config.HistoryPath != "" {
		return config.HistoryPath, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0775); err != nil {
		return "", err
	}
	switch config.HistoryDriver {
	case video_fetcher.HistoryDriverSQLite:
		return filepath.Join(dir, "history.sqlite"), nil
	default:
		return filepath.Join(dir, "history.db"), nil
	}
}
