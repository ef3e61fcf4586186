// Package cache keeps downloaded documents on disk for a limited time.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/babua-dev/clipper/filesystem"
	"github.com/babua-dev/clipper/where"
)

const TTL = 24 * time.Hour

// Key derives a stable file name from a source location.
func Key(source string) string {
	sanitized := strings.ToLower(strings.TrimSpace(source))
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry for key into target if it exists and is younger than TTL.
func Read(key string, target any) bool {
	path := filepath.Join(where.Downloads(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	return json.NewDecoder(f).Decode(target) == nil
}

// Write stores data under key, replacing any previous entry in one rename.
func Write(key string, data any) error {
	path := filepath.Join(where.Downloads(), key)
	tmpPath := path + ".tmp"

	f, err := filesystem.API().Create(tmpPath)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return filesystem.API().Rename(tmpPath, path)
}

// CollectGarbage removes expired entries in the background.
func CollectGarbage() {
	go func() {
		dir := where.Downloads()
		_ = filesystem.API().Walk(dir, func(path string, info fs.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return nil
			}
			if time.Since(info.ModTime()) > TTL {
				_ = filesystem.API().Remove(path)
			}
			return nil
		})
	}()
}
