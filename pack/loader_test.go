package pack

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/milk9111/cursorpal/component"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"packs/retro/009-blastoise.json":  {Data: []byte(blastoiseJSON)},
		"packs/retro/broken.json":         {Data: []byte(`{"states": {"idle": {"sheet": "i.png", "fps": 6, "frames": 2}}}`)},
		"raw/009-blastoise/Idle-Anim.png": {Data: pngBytes(t, 160, 384)},
		"raw/009-blastoise/Walk-Anim.png": {Data: []byte("not an image")},
	}
}

func TestLoaderLoad(t *testing.T) {
	l := NewLoader(NewFSSource(testFS(t)))
	p, err := l.Load(context.Background(), "retro/009-blastoise")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	idle, _ := p.State(component.StateIdle)
	if idle.SheetPath != "raw/009-blastoise/Idle-Anim.png" {
		t.Fatalf("unexpected sheet path %q", idle.SheetPath)
	}
	if idle.Frame != (Frame{W: 40, H: 48}) {
		t.Fatalf("expected 40x48 cells, got %+v", idle.Frame)
	}

	walk, _ := p.State(component.StateWalk)
	if walk.Frame != (Frame{}) {
		t.Fatalf("undecodable walk sheet should give zero frame, got %+v", walk.Frame)
	}
	var derr *DecodeError
	if !errors.As(p.SheetErrors[component.StateWalk], &derr) {
		t.Fatalf("expected DecodeError for walk, got %v", p.SheetErrors[component.StateWalk])
	}
	if _, ok := p.SheetErrors[component.StateIdle]; ok {
		t.Fatalf("idle should have no sheet error")
	}
}

func TestLoaderLoadErrors(t *testing.T) {
	l := NewLoader(NewFSSource(testFS(t)))

	cases := []struct {
		name string
		id   string
		is   error
	}{
		{"missing_walk", "retro/broken", ErrMissingState},
		{"not_found", "retro/nope", fs.ErrNotExist},
		{"empty_id", "", nil},
		{"escaping_id", "../secrets", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := l.Load(context.Background(), c.id)
			if p != nil {
				t.Fatalf("expected no pack, got %+v", p)
			}
			var lerr *LoadError
			if !errors.As(err, &lerr) {
				t.Fatalf("expected LoadError, got %T %v", err, err)
			}
			if c.is != nil && !errors.Is(err, c.is) {
				t.Fatalf("expected %v in chain, got %v", c.is, err)
			}
		})
	}
}

func TestLoaderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(NewFSSource(testFS(t))).Load(ctx, "retro/009-blastoise")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestOverlayPrefersFirstLayer(t *testing.T) {
	disk := fstest.MapFS{
		"packs/retro/a.json": {Data: []byte("disk")},
	}
	embedded := fstest.MapFS{
		"packs/retro/a.json": {Data: []byte("embed")},
		"packs/retro/b.json": {Data: []byte("embed-b")},
	}
	o := Overlay(disk, nil, embedded)

	data, err := fs.ReadFile(o, "packs/retro/a.json")
	if err != nil || string(data) != "disk" {
		t.Fatalf("expected disk copy, got %q (%v)", data, err)
	}
	data, err = fs.ReadFile(o, "packs/retro/b.json")
	if err != nil || string(data) != "embed-b" {
		t.Fatalf("expected embedded fallback, got %q (%v)", data, err)
	}
	if _, err := o.Open("packs/retro/c.json"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist, got %v", err)
	}

	entries, err := fs.ReadDir(o, "packs/retro")
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 2 || entries[0].Name() != "a.json" || entries[1].Name() != "b.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected merged listing [a.json b.json], got %v", names)
	}
}
