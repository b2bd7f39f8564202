package main

import (
	"fmt"
	"image"
	"io/fs"
	"log"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/cursorpal/engine"
)

// SheetCache decodes sprite sheets from the asset filesystem once and keeps
// them as ebiten images keyed by asset path.
type SheetCache struct {
	fsys fs.FS

	mu     sync.Mutex
	images map[string]*ebiten.Image
	failed map[string]bool
}

func NewSheetCache(fsys fs.FS) *SheetCache {
	return &SheetCache{
		fsys:   fsys,
		images: map[string]*ebiten.Image{},
		failed: map[string]bool{},
	}
}

// Get returns the sheet at path, or nil if it cannot be decoded. A failure
// is logged once until the cache is reset.
func (c *SheetCache) Get(path string) *ebiten.Image {
	if path == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if img := c.images[path]; img != nil {
		return img
	}
	if c.failed[path] {
		return nil
	}
	img, err := loadSheet(c.fsys, path)
	if err != nil {
		log.Printf("sheets: %v", err)
		c.failed[path] = true
		return nil
	}
	c.images[path] = img
	return img
}

// Reset drops every cached sheet so edited files are decoded again.
func (c *SheetCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, img := range c.images {
		img.Deallocate()
	}
	c.images = map[string]*ebiten.Image{}
	c.failed = map[string]bool{}
}

func loadSheet(fsys fs.FS, path string) (*ebiten.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// drawFrame draws the frame's cell centered on its anchor.
func drawFrame(screen, sheet *ebiten.Image, f engine.Frame) {
	if f.FrameW <= 0 || f.FrameH <= 0 {
		return
	}
	sub, ok := sheet.SubImage(f.Cell()).(*ebiten.Image)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-f.FrameW/2, -f.FrameH/2)
	if f.FlipX {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Scale(f.Scale, f.Scale)
	op.GeoM.Translate(math.Round(f.Anchor.X), math.Round(f.Anchor.Y))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(sub, op)
}
