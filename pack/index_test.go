package pack

import (
	"testing"
	"testing/fstest"
)

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"009-blastoise": "009-Blastoise",
		"25-pikachu":    "025-Pikachu",
		"122-mr-mime":   "122-Mr-Mime",
		"missingno":     "Missingno",
		"mr-mime":       "Mr-Mime",
		"pikachu":       "Pikachu",
	}
	for in, want := range cases {
		if got := Label(in); got != want {
			t.Errorf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildIndex(t *testing.T) {
	fsys := fstest.MapFS{
		"packs/index.json":                    {Data: []byte(`{}`)},
		"packs/retro/009-blastoise.json":      {Data: []byte(`{}`)},
		"packs/retro/001-bulbasaur.json":      {Data: []byte(`{}`)},
		"packs/retro/missingno.json":          {Data: []byte(`{}`)},
		"packs/retro/gen2/152-chikorita.json": {Data: []byte(`{}`)},
		"packs/retro/.hidden.json":            {Data: []byte(`{}`)},
		"packs/retro/notes.txt":               {Data: []byte(`x`)},
		"packs/modern/004-charmander.json":    {Data: []byte(`{}`)},
	}

	idx, err := BuildIndex(fsys, "packs")
	if err != nil {
		t.Fatalf("build index: %v", err)
	}

	retro := idx["retro"]
	wantIDs := []string{"retro/001-bulbasaur", "retro/009-blastoise", "retro/gen2/152-chikorita", "retro/missingno"}
	if len(retro) != len(wantIDs) {
		t.Fatalf("expected %d retro entries, got %+v", len(wantIDs), retro)
	}
	for i, id := range wantIDs {
		if retro[i].ID != id {
			t.Fatalf("entry %d: expected %s, got %s", i, id, retro[i].ID)
		}
	}
	if retro[1].Name != "009-Blastoise" {
		t.Fatalf("unexpected label %q", retro[1].Name)
	}
	if cats := idx.Categories(); len(cats) != 2 || cats[0] != "modern" || cats[1] != "retro" {
		t.Fatalf("unexpected categories %v", cats)
	}
	if !idx.Contains("modern/004-charmander") || idx.Contains("retro/index") {
		t.Fatalf("unexpected Contains results")
	}
	if all := idx.Entries(); len(all) != 5 || all[0].ID != "modern/004-charmander" {
		t.Fatalf("unexpected flattened entries %+v", all)
	}
}

func TestLoadIndexFallsBackToScan(t *testing.T) {
	fsys := fstest.MapFS{
		"packs/retro/009-blastoise.json": {Data: []byte(`{}`)},
	}
	idx, err := LoadIndex(fsys)
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	if !idx.Contains("retro/009-blastoise") {
		t.Fatalf("expected scanned entry, got %+v", idx)
	}

	fsys["packs/index.json"] = &fstest.MapFile{Data: []byte(`{"retro": [{"id": "retro/x", "name": "X"}]}`)}
	idx, err = LoadIndex(fsys)
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	if !idx.Contains("retro/x") || idx.Contains("retro/009-blastoise") {
		t.Fatalf("expected index file to win, got %+v", idx)
	}
}
