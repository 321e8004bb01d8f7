package inputfile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/edouard/tgbind/internal/platform"
)

// ErrOutsideRoot is returned when a local path escapes the resolver's root.
var ErrOutsideRoot = errors.New("inputfile: path outside upload root")

// Resolver turns loosely typed parameter values into Content.
//
// Files are opened eagerly: a readable local path becomes an open stream as
// soon as Resolve returns, and the caller owns closing it.
type Resolver struct {
	// Root, when set, restricts which local files may be opened.
	Root string
}

// Resolve normalizes v. It reports ok=false when v is not a file reference
// at all (numbers, maps, nil), so the caller can encode it as a plain field.
//
//   - io.Reader passes through as a stream.
//   - File is opened.
//   - A string naming a readable local file is opened.
//   - Any other string (URL or file_id) passes through unchanged.
func (r Resolver) Resolve(ctx context.Context, v any) (c Content, ok bool, err error) {
	switch x := v.(type) {
	case nil:
		return Content{}, false, nil
	case Path:
		resolved, err := r.guard(string(x))
		if err != nil {
			return Content{}, true, err
		}
		c, err = resolved.Open(ctx)
		return c, true, err
	case File:
		c, err = x.Open(ctx)
		if err != nil {
			return Content{}, true, err
		}
		return c, true, nil
	case io.Reader:
		return Content{Reader: x}, true, nil
	case string:
		if !IsReadableFile(x) {
			return Content{Ref: x}, true, nil
		}
		resolved, err := r.guard(x)
		if err != nil {
			return Content{}, true, err
		}
		c, err = resolved.Open(ctx)
		return c, true, err
	}
	return Content{}, false, nil
}

// guard returns the path to open. With a Root set that is the real,
// symlink-free location of path.
func (r Resolver) guard(path string) (Path, error) {
	if r.Root == "" {
		return Path(path), nil
	}
	resolved, err := platform.Confine(r.Root, path)
	if err != nil {
		if errors.Is(err, platform.ErrPathOutOfBounds) {
			return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
		}
		return "", fmt.Errorf("inputfile: validate %s: %w", path, err)
	}
	return Path(resolved), nil
}
