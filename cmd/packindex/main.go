package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/milk9111/cursorpal/pack"
)

func main() {
	dir := flag.String("dir", "assets", "asset root holding packs/ and raw/")
	out := flag.String("out", "", "index file to write (default: <dir>/packs/index.json)")
	check := flag.Bool("check", false, "load every pack and fail if any is broken")
	flag.Parse()

	if *out == "" {
		*out = filepath.Join(*dir, filepath.FromSlash(pack.IndexPath))
	}
	if err := run(os.DirFS(*dir), *out, *check); err != nil {
		log.Fatal(err)
	}
}

func run(fsys fs.FS, out string, check bool) error {
	idx, err := pack.BuildIndex(fsys, "packs")
	if err != nil {
		return err
	}

	if check {
		if err := checkPacks(fsys, idx); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("packindex: marshal: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("packindex: write %s: %w", out, err)
	}

	n := len(idx.Entries())
	log.Printf("packindex: wrote %d packs in %d categories to %s", n, len(idx), out)
	return nil
}

func checkPacks(fsys fs.FS, idx pack.Index) error {
	loader := pack.NewLoader(pack.NewFSSource(fsys))
	broken := 0
	for _, e := range idx.Entries() {
		p, err := loader.Load(context.Background(), e.ID)
		if err != nil {
			log.Printf("packindex: %v", err)
			broken++
			continue
		}
		for _, name := range p.StateNames() {
			if err := p.SheetErrors[name]; err != nil {
				log.Printf("packindex: %s: %v", e.ID, err)
				broken++
			}
		}
	}
	if broken > 0 {
		return fmt.Errorf("packindex: %d problems found", broken)
	}
	return nil
}
