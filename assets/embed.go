package assets

import (
	"embed"
	"io/fs"
	"os"

	"github.com/milk9111/cursorpal/pack"
)

// FS holds the bundled packs: descriptors under packs/ and sheets under raw/.
//
//go:embed packs raw
var FS embed.FS

// Open returns the asset filesystem. When dir exists on disk its files take
// precedence over the embedded ones, so packs can be edited without a
// rebuild.
func Open(dir string) fs.FS {
	if dir == "" {
		return FS
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return FS
	}
	return pack.Overlay(os.DirFS(dir), FS)
}
