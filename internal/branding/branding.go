// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName           string `yaml:"cli_name"`
	DisplayName       string `yaml:"display_name"`
	Description       string `yaml:"description"`
	HomeDir           string `yaml:"home_dir"`
	EnvPrefix         string `yaml:"env_prefix"`
	CompletionMessage string `yaml:"completion_message"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:           "subsample",
			DisplayName:       "Subsample",
			Description:       "Build reproducible per-class subsets of image datasets",
			HomeDir:           ".subsample",
			EnvPrefix:         "SUBSAMPLE",
			CompletionMessage: "Subsample of the training set created successfully.",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "subsample").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".subsample").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "SUBSAMPLE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// CompletionMessage is the single line printed after a successful run.
func CompletionMessage() string { load(); return defaults.CompletionMessage }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("seed") → "SUBSAMPLE_SEED".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
