package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathOutOfBounds is returned when a path resolves outside its root.
var ErrPathOutOfBounds = errors.New("path outside allowed root")

// Replaceable for testing.
var (
	filepathAbs          = filepath.Abs
	filepathEvalSymlinks = filepath.EvalSymlinks
)

// Confine resolves target (following symlinks) and returns the real path if
// it lies under root. Targets that do not exist yet are resolved through
// their deepest existing ancestor.
func Confine(root, target string) (string, error) {
	realRoot, err := realPath(root)
	if err != nil {
		return "", fmt.Errorf("confine: root: %w", err)
	}
	realTarget, err := realPathLenient(target)
	if err != nil {
		return "", fmt.Errorf("confine: target: %w", err)
	}

	rel, err := filepath.Rel(realRoot, realTarget)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathOutOfBounds, target)
	}
	return realTarget, nil
}

func realPath(p string) (string, error) {
	abs, err := filepathAbs(p)
	if err != nil {
		return "", err
	}
	resolved, err := filepathEvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return filepath.Clean(resolved), nil
}

// realPathLenient is realPath for paths whose trailing segments may not
// exist: the missing segments are appended to the resolved ancestor.
func realPathLenient(p string) (string, error) {
	abs, err := filepathAbs(p)
	if err != nil {
		return "", err
	}
	existing := filepath.Clean(abs)
	missing := ""
	for {
		resolved, err := filepathEvalSymlinks(existing)
		if err == nil {
			return filepath.Join(resolved, missing), nil
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return filepath.Clean(abs), nil
		}
		missing = filepath.Join(filepath.Base(existing), missing)
		existing = parent
	}
}
