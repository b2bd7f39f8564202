package pack

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"sort"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Source is where descriptors and sheets come from.
type Source interface {
	// Descriptor returns the raw descriptor bytes at path.
	Descriptor(ctx context.Context, path string) ([]byte, error)
	// SheetSize decodes the pixel size of the image at path.
	SheetSize(ctx context.Context, path string) (image.Point, error)
}

// FSSource reads packs from a file system rooted at the asset directory
// (the one holding packs/ and raw/).
type FSSource struct {
	FS fs.FS
}

func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{FS: fsys}
}

func (s *FSSource) Descriptor(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(s.FS, name)
}

func (s *FSSource) SheetSize(ctx context.Context, name string) (image.Point, error) {
	if err := ctx.Err(); err != nil {
		return image.Point{}, err
	}
	f, err := s.FS.Open(name)
	if err != nil {
		return image.Point{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return image.Point{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return image.Point{X: cfg.Width, Y: cfg.Height}, nil
}

// Overlay layers file systems: the first layer that has a file wins, and
// directory listings merge every layer. Use it to let an on-disk pack folder
// shadow the embedded packs.
func Overlay(layers ...fs.FS) fs.FS {
	out := make(overlayFS, 0, len(layers))
	for _, l := range layers {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

type overlayFS []fs.FS

func (o overlayFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	var firstErr error
	for _, l := range o {
		f, err := l.Open(name)
		if err == nil {
			return f, nil
		}
		if firstErr == nil && !errors.Is(err, fs.ErrNotExist) {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func (o overlayFS) ReadDir(name string) ([]fs.DirEntry, error) {
	seen := make(map[string]struct{})
	var entries []fs.DirEntry
	found := false
	for _, l := range o {
		list, err := fs.ReadDir(l, name)
		if err != nil {
			continue
		}
		found = true
		for _, e := range list {
			if _, ok := seen[e.Name()]; ok {
				continue
			}
			seen[e.Name()] = struct{}{}
			entries = append(entries, e)
		}
	}
	if !found {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Sub keeps the layering for fs.Sub callers.
func (o overlayFS) Sub(dir string) (fs.FS, error) {
	subs := make(overlayFS, 0, len(o))
	for _, l := range o {
		s, err := fs.Sub(l, dir)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, nil
}

var _ fs.ReadDirFS = overlayFS(nil)
