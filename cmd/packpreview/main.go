package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/cursorpal/assets"
	"github.com/milk9111/cursorpal/component"
	"github.com/milk9111/cursorpal/engine"
	"github.com/milk9111/cursorpal/pack"
	"github.com/milk9111/cursorpal/system"
)

const (
	screenWidth  = 512
	screenHeight = 512
)

type previewGame struct {
	pack   *pack.Pack
	sheets map[component.StateName]*ebiten.Image
	states []component.StateName
	scale  float64

	state    int
	facing   int
	mirrored bool
	cursor   component.AnimationCursor
	last     time.Time
}

func newPreviewGame(fsys fs.FS, p *pack.Pack, start component.StateName, scale float64) *previewGame {
	g := &previewGame{
		pack:   p,
		sheets: map[component.StateName]*ebiten.Image{},
		states: p.StateNames(),
		scale:  scale,
		facing: 2, // front in clockwise order
	}
	for i, name := range g.states {
		if name == start {
			g.state = i
		}
		st, _ := p.State(name)
		img, err := loadSheet(fsys, st.SheetPath)
		if err != nil {
			log.Printf("packpreview: %v", err)
			continue
		}
		g.sheets[name] = img
	}
	g.cursor = component.NewAnimationCursor(g.states[g.state])
	return g
}

func loadSheet(fsys fs.FS, path string) (*ebiten.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

func (g *previewGame) Update() error {
	for _, key := range []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyArrowLeft, ebiten.KeyArrowUp, ebiten.KeyArrowDown} {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		state := g.state
		g.state, g.facing = press(key, g.state, g.facing, len(g.states))
		if g.state != state {
			g.cursor.Reset(g.states[g.state])
		}
		break
	}

	now := time.Now()
	var dt time.Duration
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	st, _ := g.pack.State(g.cursor.State)
	g.cursor.Row, g.mirrored = rowFor(g.pack, st, component.Clockwise[g.facing])
	g.cursor.Advance(dt, st.FPS, st.Frames)
	return nil
}

// press applies one arrow key: left/right cycle the facing clockwise,
// up/down cycle the state. Both wrap.
func press(key ebiten.Key, state, facing, states int) (int, int) {
	switch key {
	case ebiten.KeyArrowRight:
		facing = cycle(facing, 1, len(component.Clockwise))
	case ebiten.KeyArrowLeft:
		facing = cycle(facing, -1, len(component.Clockwise))
	case ebiten.KeyArrowUp:
		state = cycle(state, 1, states)
	case ebiten.KeyArrowDown:
		state = cycle(state, -1, states)
	}
	return state, facing
}

func cycle(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

// rowFor picks the sheet row for facing and whether to draw it flipped.
func rowFor(p *pack.Pack, st *pack.State, facing component.Direction) (int, bool) {
	if p.FlipX {
		return system.ResolveMirrored(st.Rows, facing)
	}
	return system.ResolveRow(st.Rows, facing), false
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x24, 0x2a, 0xff})

	st, _ := g.pack.State(g.cursor.State)
	facing := component.Clockwise[g.facing]
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  state: %s  facing: %s  row: %d  frame: %d/%d\nleft/right: facing  up/down: state",
		g.pack.ID, g.cursor.State, facing, g.cursor.Row, g.cursor.Frame+1, st.Frames))

	sheet := g.sheets[g.cursor.State]
	if sheet == nil || st.Frame.W <= 0 || st.Frame.H <= 0 {
		return
	}
	cell := engine.Frame{
		SheetOffsetX: -float64(g.cursor.Frame) * st.Frame.W,
		SheetOffsetY: -float64(g.cursor.Row) * st.Frame.H,
		FrameW:       st.Frame.W,
		FrameH:       st.Frame.H,
	}.Cell()
	sub := sheet.SubImage(cell).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-st.Frame.W/2, -st.Frame.H/2)
	if g.mirrored {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Scale(g.scale, g.scale)
	op.GeoM.Translate(screenWidth/2, screenHeight/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(sub, op)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	dir := flag.String("dir", "assets", "asset root holding packs/ and raw/")
	id := flag.String("pack", "retro/000-sample", "pack id to preview")
	state := flag.String("state", "idle", "state to start on")
	scale := flag.Float64("scale", 4, "draw scale")
	flag.Parse()

	fsys := assets.Open(*dir)
	p, err := pack.NewLoader(pack.NewFSSource(fsys)).Load(context.Background(), *id)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Pack Preview: " + *id)
	if err := ebiten.RunGame(newPreviewGame(fsys, p, component.StateName(*state), *scale)); err != nil {
		log.Fatal(err)
	}
}
