package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/imgprep/subsample/internal/branding"
	"github.com/imgprep/subsample/internal/dataset"
	"github.com/imgprep/subsample/internal/sampler"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized keys.
const (
	KeyDatasetRoot = "dataset_root"
	KeyFraction    = "fraction"
	KeySeed        = "seed"
	KeySourceDir   = "source_dir"
	KeyDestDir     = "dest_dir"
)

// Defaults for the recognized keys.
const (
	DefaultDatasetRoot = "."
	DefaultFraction    = 0.05
	DefaultSeed        = 42
)

// ErrUnknownKey is returned by Set for keys this tool does not read.
var ErrUnknownKey = errors.New("unknown config key")

var defaults = map[string]interface{}{
	KeyDatasetRoot: DefaultDatasetRoot,
	KeyFraction:    DefaultFraction,
	KeySeed:        DefaultSeed,
	KeySourceDir:   dataset.DefaultSource,
	KeyDestDir:     dataset.DefaultDest,
}

// Keys returns the recognized keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dir returns the path to the config directory (~/.subsample/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.subsample/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper with defaults, the config file, and the environment.
// An explicit cfgFile must be readable; the default file may be absent.
func Load(cfgFile string) error {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	explicit := cfgFile != ""
	if !explicit {
		cfgFile = FilePath()
	}
	viper.SetConfigFile(cfgFile)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// The default file does not exist until the first `config set`.
	if err := viper.ReadInConfig(); err != nil && explicit {
		return fmt.Errorf("reading config file %s: %w", cfgFile, err)
	}
	return nil
}

// Reset clears all Viper state. Used between tests.
func Reset() {
	viper.Reset()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set validates key and value and saves them to the config file. Only keys
// already in the file and the new key are written; defaults and environment
// values stay out of it.
func Set(key, value string) error {
	if err := checkValue(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = FilePath()
	}

	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}
	file.Set(key, value)

	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file %s: %w", configFile, err)
	}

	viper.Set(key, value)
	return nil
}

func checkValue(key, value string) error {
	switch key {
	case KeyFraction:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", key, value, err)
		}
		return sampler.ValidateFraction(f)
	case KeySeed:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Errorf("parsing %s %q: %w", key, value, err)
		}
	case KeyDatasetRoot, KeySourceDir, KeyDestDir:
		if value == "" {
			return fmt.Errorf("%s must not be empty", key)
		}
	default:
		return fmt.Errorf("%w %q (known keys: %v)", ErrUnknownKey, key, Keys())
	}
	return nil
}
