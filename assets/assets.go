// Package assets resolves paths referenced by the site configuration against
// the static-asset root (the directory served as /public).
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"strings"

	_ "golang.org/x/image/webp"
)

// ErrNotExist is returned when a referenced asset is missing.
var ErrNotExist = errors.New("asset not found")

// Root is a static-asset root backed by an fs.FS.
type Root struct {
	fsys fs.FS
	name string
}

// Dir returns a Root for a directory on disk.
func Dir(path string) *Root {
	return &Root{fsys: os.DirFS(path), name: path}
}

// FS returns a Root for an arbitrary file system, e.g. an embed.FS.
func FS(fsys fs.FS) *Root {
	return &Root{fsys: fsys, name: "fs"}
}

// Name returns the directory the root was opened with.
func (r *Root) Name() string {
	return r.name
}

// FileSystem exposes the underlying file system for serving.
func (r *Root) FileSystem() fs.FS {
	return r.fsys
}

func clean(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if !fs.ValidPath(name) || name == "." {
		return "", fmt.Errorf("invalid asset path %q", name)
	}
	return name, nil
}

// CheckFile reports an error unless name is a regular file under the root.
func (r *Root) CheckFile(name string) error {
	_, err := r.stat(name)
	return err
}

func (r *Root) stat(name string) (string, error) {
	name, err := clean(name)
	if err != nil {
		return "", err
	}
	info, err := fs.Stat(r.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s in %s", ErrNotExist, name, r.name)
		}
		return "", fmt.Errorf("stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s in %s is not a regular file", name, r.name)
	}
	return name, nil
}

// CheckImage is CheckFile plus a successful decode of the image header.
func (r *Root) CheckImage(name string) error {
	_, _, err := r.ImageSize(name)
	return err
}

// ImageSize returns the pixel dimensions of the image at name. WebP, PNG,
// JPEG and GIF are recognized.
func (r *Root) ImageSize(name string) (width, height int, err error) {
	name, err = r.stat(name)
	if err != nil {
		return 0, 0, err
	}
	f, err := r.fsys.Open(name)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image %s: %w", name, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return 0, 0, fmt.Errorf("%s image %s has no pixels", format, name)
	}
	return cfg.Width, cfg.Height, nil
}
