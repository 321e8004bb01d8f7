// Package platform holds the filesystem and retry helpers shared by the CLI
// and the token vault.
package platform

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const tempPattern = ".tgbind-*.tmp"

// Replaceable for testing error paths.
var (
	osMkdirAll   = os.MkdirAll
	osCreateTemp = os.CreateTemp
	osRename     = os.Rename
	fileSync     = func(f *os.File) error { return f.Sync() }
)

// AtomicWrite replaces path with data. Readers see either the old content or
// the new one, never a mix. Missing parent directories are created 0700.
func AtomicWrite(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := osMkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("atomic write: mkdir %s: %w", dir, err)
	}

	tmp, err := osCreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("atomic write: create temp: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("atomic write: chmod: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("atomic write: write: %w", err)
	}
	if err := fileSync(tmp); err != nil {
		return fmt.Errorf("atomic write: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("atomic write: close: %w", err)
	}
	if err := osRename(tmp.Name(), path); err != nil {
		return fmt.Errorf("atomic write: rename: %w", err)
	}

	slog.Debug("file replaced", "component", "platform", "operation", "atomic_write", "path", path, "bytes", len(data))
	return nil
}
