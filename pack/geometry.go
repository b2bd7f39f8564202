package pack

import (
	"image"
	"log"
	"math"

	"github.com/milk9111/cursorpal/component"
)

// NormalizeGeometry recomputes every state's cell size from its decoded
// sheet: width over frame count, height over distinct rows. A state with no
// decoded size gets a zero frame. Authored sizes are only compared, never
// kept.
func NormalizeGeometry(p *Pack, sizes map[component.StateName]image.Point) {
	if p == nil {
		return
	}
	for _, name := range p.StateNames() {
		st := p.States[name]
		size := sizes[name]
		st.SheetSize = size
		if size.X <= 0 || size.Y <= 0 || st.Frames <= 0 {
			st.SheetSize = image.Point{}
			st.Frame = Frame{}
			continue
		}
		st.Frame = Frame{
			W: float64(size.X) / float64(st.Frames),
			H: float64(size.Y) / float64(st.DistinctRows()),
		}
		if hint := st.AuthoredFrame; hint.W > 0 && hint.H > 0 {
			if math.Abs(hint.W-st.Frame.W) >= 0.5 || math.Abs(hint.H-st.Frame.H) >= 0.5 {
				log.Printf("pack: %s: %s frame %gx%g does not match sheet, using %gx%g",
					p.ID, name, hint.W, hint.H, st.Frame.W, st.Frame.H)
			}
		}
	}
}
