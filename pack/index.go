package pack

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// IndexPath is where the pack index lives, relative to the asset root.
const IndexPath = "packs/index.json"

// IndexEntry is one selectable pack.
type IndexEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Index groups packs by category, e.g. {"retro": [{id, name}, ...]}.
type Index map[string][]IndexEntry

// Categories returns the category names in sorted order.
func (idx Index) Categories() []string {
	out := make([]string, 0, len(idx))
	for c := range idx {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Entries flattens the index in category order.
func (idx Index) Entries() []IndexEntry {
	var out []IndexEntry
	for _, c := range idx.Categories() {
		out = append(out, idx[c]...)
	}
	return out
}

// Contains reports whether id is listed.
func (idx Index) Contains(id string) bool {
	for _, entries := range idx {
		for _, e := range entries {
			if e.ID == id {
				return true
			}
		}
	}
	return false
}

// LoadIndex reads packs/index.json, building the index from the descriptors
// on disk when the file is missing.
func LoadIndex(fsys fs.FS) (Index, error) {
	data, err := fs.ReadFile(fsys, IndexPath)
	if errors.Is(err, fs.ErrNotExist) {
		return BuildIndex(fsys, "packs")
	}
	if err != nil {
		return nil, fmt.Errorf("pack: read index: %w", err)
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("pack: parse index: %w", err)
	}
	return idx, nil
}

// BuildIndex scans root for descriptors. The first directory under root is
// the category; the id is the descriptor path without root and extension.
// Entries sort by dex number, unnumbered packs last.
func BuildIndex(fsys fs.FS, root string) (Index, error) {
	type found struct {
		entry IndexEntry
		dex   int
	}
	byCategory := make(map[string][]found)

	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && p != root {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || path.Ext(p) != ".json" {
			return nil
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		if rel == path.Base(IndexPath) {
			return nil
		}
		id := strings.TrimSuffix(rel, ".json")
		category, _, ok := strings.Cut(id, "/")
		if !ok {
			category = ""
		}
		slug := Slug(id)
		dex, ok := DexNumber(slug)
		if !ok {
			dex = 9999
		}
		byCategory[category] = append(byCategory[category], found{
			entry: IndexEntry{ID: id, Name: Label(slug)},
			dex:   dex,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pack: build index: %w", err)
	}

	idx := make(Index, len(byCategory))
	for category, list := range byCategory {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].dex != list[j].dex {
				return list[i].dex < list[j].dex
			}
			return list[i].entry.ID < list[j].entry.ID
		})
		entries := make([]IndexEntry, 0, len(list))
		for _, f := range list {
			entries = append(entries, f.entry)
		}
		idx[category] = entries
	}
	return idx, nil
}

// Label turns a slug into a display name: "9-mr-mime" -> "009-Mr-Mime".
// Slugs without a leading number are only title-cased.
func Label(slug string) string {
	num, name, ok := strings.Cut(slug, "-")
	if _, isDex := DexNumber(slug); !ok || !isDex {
		return titleCase(slug)
	}
	if len(num) < 3 {
		num = strings.Repeat("0", 3-len(num)) + num
	}
	return num + "-" + titleCase(name)
}

func titleCase(s string) string {
	parts := strings.Split(s, "-")
	out := parts[:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, strings.ToUpper(p[:1])+p[1:])
	}
	return strings.Join(out, "-")
}
