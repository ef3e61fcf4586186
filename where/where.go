// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/babua-dev/clipper/constant"
	"github.com/babua-dev/clipper/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "CLIPPER_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden with the CLIPPER_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Watched resolves the file holding completed clip records.
func Watched() string {
	return filepath.Join(Config(), "watched.json")
}

// History resolves the file listing recently played clips.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Queries resolves the file ranking questions looked up in the catalog.
func Queries() string {
	return filepath.Join(Config(), "queries.json")
}

// Catalog resolves the default location of the clip index.
func Catalog() string {
	return filepath.Join(Config(), "clips.json")
}

// Downloads resolves the directory holding cached remote documents, such as clip indexes.
func Downloads() string {
	return ensureDir(filepath.Join(Cache(), "downloads"))
}

// Temp resolves a unique, volatile filesystem path for transient application artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.App))
}
