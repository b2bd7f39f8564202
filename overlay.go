package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/cursorpal/assets"
	"github.com/milk9111/cursorpal/config"
	"github.com/milk9111/cursorpal/engine"
	"github.com/milk9111/cursorpal/pack"
	"github.com/milk9111/cursorpal/settings"
)

const switchTimeout = 10 * time.Second

var packFileExts = []string{".json", ".png", ".gif", ".jpg", ".jpeg", ".bmp", ".webp"}

// Overlay is the transparent full-screen window the sprite lives in.
type Overlay struct {
	engine *engine.Engine
	sched  *engine.FrameScheduler
	sheets *SheetCache
	debug  bool

	settingsPath    string
	settings        settings.Settings
	settingsWatcher *settings.Watcher
	packWatcher     *settings.Watcher

	cursorX, cursorY int
	hasCursor        bool
}

type OverlayOptions struct {
	SettingsPath string
	AssetDir     string
	Config       config.Config
	Debug        bool
}

func NewOverlay(opts OverlayOptions) (*Overlay, error) {
	fsys := assets.Open(opts.AssetDir)
	sched := engine.NewFrameScheduler()
	o := &Overlay{
		sched:        sched,
		sheets:       NewSheetCache(fsys),
		debug:        opts.Debug,
		settingsPath: opts.SettingsPath,
		engine: engine.New(
			pack.NewLoader(pack.NewFSSource(fsys)),
			sched,
			engine.WithConfig(opts.Config),
		),
	}

	s, err := settings.Load(opts.SettingsPath)
	if err != nil {
		log.Printf("overlay: %v", err)
	}
	o.settings = s
	o.engine.ApplyConfigPatch(s.Patch)

	ctx, cancel := context.WithTimeout(context.Background(), switchTimeout)
	defer cancel()
	if err := o.engine.SwitchPack(ctx, s.Pack); err != nil {
		if s.Pack == settings.DefaultPack {
			return nil, fmt.Errorf("overlay: no usable pack: %w", err)
		}
		log.Printf("overlay: falling back to %s", settings.DefaultPack)
		if err := o.engine.SwitchPack(ctx, settings.DefaultPack); err != nil {
			return nil, fmt.Errorf("overlay: no usable pack: %w", err)
		}
	}
	if s.Enabled {
		o.start()
	}

	o.watch(opts.AssetDir)
	return o, nil
}

func (o *Overlay) watch(assetDir string) {
	dir := filepath.Dir(o.settingsPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("overlay: settings dir: %v", err)
	} else if w, err := settings.NewWatcher(settings.SettingsExts, dir); err != nil {
		log.Printf("overlay: watch settings: %v", err)
	} else {
		o.settingsWatcher = w
	}

	dirs := packDirs(assetDir)
	if len(dirs) == 0 {
		return
	}
	w, err := settings.NewWatcher(packFileExts, dirs...)
	if err != nil {
		log.Printf("overlay: watch packs: %v", err)
		return
	}
	o.packWatcher = w
}

// packDirs lists the directories under assetDir/packs and assetDir/raw,
// since file watches do not recurse.
func packDirs(assetDir string) []string {
	if assetDir == "" {
		return nil
	}
	var dirs []string
	for _, root := range []string{"packs", "raw"} {
		base := filepath.Join(assetDir, root)
		_ = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				dirs = append(dirs, path)
			}
			return nil
		})
	}
	return dirs
}

func (o *Overlay) Close() {
	o.engine.Stop()
	if o.settingsWatcher != nil {
		_ = o.settingsWatcher.Close()
	}
	if o.packWatcher != nil {
		_ = o.packWatcher.Close()
	}
}

func (o *Overlay) start() {
	if err := o.engine.Start(nil); err != nil {
		log.Printf("overlay: start: %v", err)
		return
	}
	// the engine forgets samples across restarts
	o.hasCursor = false
}

func (o *Overlay) Update() error {
	o.drainEvents()

	now := time.Now()
	x, y := ebiten.CursorPosition()
	if !o.hasCursor || x != o.cursorX || y != o.cursorY {
		o.engine.Observe(float64(x), float64(y), now)
		o.cursorX, o.cursorY, o.hasCursor = x, y, true
	}
	o.sched.RunPending(now)
	return nil
}

func (o *Overlay) drainEvents() {
	for {
		select {
		case path, ok := <-o.settingsEvents():
			if !ok {
				o.settingsWatcher = nil
				continue
			}
			if filepath.Clean(path) == filepath.Clean(o.settingsPath) {
				o.reloadSettings()
			}
		case path, ok := <-o.packEvents():
			if !ok {
				o.packWatcher = nil
				continue
			}
			o.reloadPack(path)
		default:
			return
		}
	}
}

func (o *Overlay) settingsEvents() <-chan string {
	if o.settingsWatcher == nil {
		return nil
	}
	return o.settingsWatcher.Events
}

func (o *Overlay) packEvents() <-chan string {
	if o.packWatcher == nil {
		return nil
	}
	return o.packWatcher.Events
}

func (o *Overlay) reloadSettings() {
	next, err := settings.Load(o.settingsPath)
	if err != nil {
		log.Printf("overlay: %v", err)
		return
	}
	prev := o.settings
	o.settings = next

	o.engine.ApplyConfigPatch(next.Patch)
	if next.Pack != prev.Pack {
		o.switchPack(next.Pack)
	}
	switch {
	case next.Enabled && !o.engine.Running():
		o.start()
	case !next.Enabled && o.engine.Running():
		o.engine.Stop()
	}
}

// switchPack loads id off the update goroutine. A failed or superseded
// switch leaves the current pack showing.
func (o *Overlay) switchPack(id string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), switchTimeout)
		defer cancel()
		if err := o.engine.SwitchPack(ctx, id); err != nil {
			log.Printf("overlay: switch to %s: %v", id, err)
		}
	}()
}

func (o *Overlay) reloadPack(path string) {
	current := o.engine.Pack()
	if current == nil {
		return
	}
	log.Printf("overlay: %s changed, reloading %s", path, current.ID)
	o.sheets.Reset()
	o.switchPack(current.ID)
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	f, ok := o.engine.Frame()
	if !ok {
		return
	}
	if sheet := o.sheets.Get(f.Sheet); sheet != nil {
		drawFrame(screen, sheet, f)
	}

	if o.debug {
		w, h := float32(f.FrameW*f.Scale), float32(f.FrameH*f.Scale)
		x, y := float32(f.Anchor.X)-w/2, float32(f.Anchor.Y)-h/2
		vector.StrokeRect(screen, x, y, w, h, 1, colornames.Crimson, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %s row %d frame %d", f.State, f.Facing, f.Row, f.Index), int(x), int(y+h)+2)
	}
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
