package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfine(t *testing.T) {
	root := t.TempDir()
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "media", "photos"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "media", "cat.jpg"), []byte("jpg"), 0o644); err != nil {
		t.Fatal(err)
	}
	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(root, "escape")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "media"), filepath.Join(root, "alias")); err != nil {
		t.Fatal(err)
	}
	trap := root + "-other"
	if err := os.MkdirAll(trap, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(trap) })

	tests := []struct {
		name    string
		target  string
		want    string
		outside bool
	}{
		{name: "root itself", target: root, want: realRoot},
		{name: "file", target: filepath.Join(root, "media", "cat.jpg"), want: filepath.Join(realRoot, "media", "cat.jpg")},
		{name: "symlink inside", target: filepath.Join(root, "alias", "cat.jpg"), want: filepath.Join(realRoot, "media", "cat.jpg")},
		{name: "missing file", target: filepath.Join(root, "media", "new.png"), want: filepath.Join(realRoot, "media", "new.png")},
		{name: "missing chain", target: filepath.Join(root, "a", "b", "c.txt"), want: filepath.Join(realRoot, "a", "b", "c.txt")},
		{name: "dot dot", target: filepath.Join(root, "media", "..", "..", "etc", "passwd"), outside: true},
		{name: "symlink escape", target: filepath.Join(root, "escape"), outside: true},
		{name: "prefix trap", target: trap, outside: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Confine(root, tt.target)
			if tt.outside {
				if !errors.Is(err, ErrPathOutOfBounds) {
					t.Fatalf("err = %v, want ErrPathOutOfBounds", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Confine: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfine_missingRoot(t *testing.T) {
	_, err := Confine(filepath.Join(t.TempDir(), "gone"), "/tmp/x")
	if err == nil || errors.Is(err, ErrPathOutOfBounds) {
		t.Errorf("err = %v, want a root resolution error", err)
	}
}

func TestConfine_absErrors(t *testing.T) {
	root := t.TempDir()
	tests := []struct {
		name    string
		failing int
	}{
		{"root", 1},
		{"target", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			orig := filepathAbs
			filepathAbs = func(p string) (string, error) {
				calls++
				if calls == tt.failing {
					return "", errors.New("abs failed")
				}
				return orig(p)
			}
			t.Cleanup(func() { filepathAbs = orig })

			if _, err := Confine(root, filepath.Join(root, "f")); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConfine_resolvesThroughAncestor(t *testing.T) {
	origAbs, origEval := filepathAbs, filepathEvalSymlinks
	t.Cleanup(func() { filepathAbs, filepathEvalSymlinks = origAbs, origEval })

	filepathAbs = func(p string) (string, error) { return filepath.Clean(p), nil }
	filepathEvalSymlinks = func(p string) (string, error) {
		if p == "/srv/uploads" {
			return p, nil
		}
		return "", errors.New("no such file")
	}

	got, err := Confine("/srv/uploads", "/srv/uploads/x/y.bin")
	if err != nil {
		t.Fatalf("Confine: %v", err)
	}
	if got != "/srv/uploads/x/y.bin" {
		t.Errorf("Confine = %q, want %q", got, "/srv/uploads/x/y.bin")
	}
}
