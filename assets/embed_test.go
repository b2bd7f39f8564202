package assets

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/cursorpal/component"
	"github.com/milk9111/cursorpal/pack"
)

func TestSamplePackLoads(t *testing.T) {
	loader := pack.NewLoader(pack.NewFSSource(FS))
	p, err := loader.Load(context.Background(), "retro/000-sample")
	if err != nil {
		t.Fatalf("load sample: %v", err)
	}
	if len(p.SheetErrors) != 0 {
		t.Fatalf("unexpected sheet errors: %v", p.SheetErrors)
	}

	cases := []struct {
		state  component.StateName
		frames int
	}{
		{component.StateIdle, 4},
		{component.StateWalk, 6},
		{component.StateSleep, 2},
	}
	for _, c := range cases {
		st, ok := p.State(c.state)
		if !ok {
			t.Fatalf("missing state %s", c.state)
		}
		if st.Frames != c.frames || st.Frame.W != 32 || st.Frame.H != 32 {
			t.Fatalf("%s: unexpected geometry %+v", c.state, st.Frame)
		}
	}
}

func TestIndexListsSample(t *testing.T) {
	idx, err := pack.LoadIndex(FS)
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	if !idx.Contains("retro/000-sample") {
		t.Fatalf("expected the sample in the index, got %+v", idx)
	}
}

func TestOpenPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "packs"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "packs", "index.json"), []byte(`{"custom":[{"id":"custom/x","name":"X"}]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fsys := Open(dir)
	idx, err := pack.LoadIndex(fsys)
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	if !idx.Contains("custom/x") {
		t.Fatalf("expected the disk index to win, got %+v", idx)
	}
	if _, err := fsys.Open("raw/000-sample/idle.png"); err != nil {
		t.Fatalf("expected embedded sheets to stay visible: %v", err)
	}

	if Open(filepath.Join(dir, "missing")) != fs.FS(FS) {
		t.Fatalf("expected the embedded FS when the disk dir is missing")
	}
}
