package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/milk9111/cursorpal/pack"
)

const descriptor = `{
  "name": "Test",
  "states": {
    "idle": {"sheet": "idle.png", "frame": {"w": 8, "h": 8}, "fps": 4, "frames": 2, "rows": {"front": 0}},
    "walk": {"sheet": "idle.png", "frame": {"w": 8, "h": 8}, "fps": 4, "frames": 2, "rows": {"front": 0}}
  }
}`

func sheet(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 16, 8))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestRunWritesIndex(t *testing.T) {
	fsys := fstest.MapFS{
		"packs/retro/025-pikachu.json":   {Data: []byte(descriptor)},
		"packs/retro/009-blastoise.json": {Data: []byte(descriptor)},
		"raw/025-pikachu/idle.png":       {Data: sheet(t)},
		"raw/009-blastoise/idle.png":     {Data: sheet(t)},
	}
	out := filepath.Join(t.TempDir(), "index.json")

	if err := run(fsys, out, true); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	var idx pack.Index
	if err := json.Unmarshal(data, &idx); err != nil {
		t.Fatalf("parse index: %v", err)
	}
	entries := idx["retro"]
	if len(entries) != 2 || entries[0].ID != "retro/009-blastoise" || entries[1].Name != "025-Pikachu" {
		t.Fatalf("unexpected index %+v", idx)
	}
}

func TestRunCheckReportsBrokenPacks(t *testing.T) {
	fsys := fstest.MapFS{
		"packs/retro/001-broken.json": {Data: []byte(`{"states": {}}`)},
	}
	out := filepath.Join(t.TempDir(), "index.json")

	if err := run(fsys, out, true); err == nil {
		t.Fatalf("expected the broken pack to fail the check")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("expected no index written on a failed check")
	}

	if err := run(fsys, out, false); err != nil {
		t.Fatalf("expected the index without -check, got %v", err)
	}
}
