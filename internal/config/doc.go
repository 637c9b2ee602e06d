// Package config resolves run settings from flags, SUBSAMPLE_* environment
// variables, and the user config file at ~/.subsample/config.yaml, and
// provides functions to read and write individual keys in that file.
package config
