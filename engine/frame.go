package engine

import (
	"image"
	"math"

	"github.com/milk9111/cursorpal/common"
	"github.com/milk9111/cursorpal/component"
)

// Frame is what the host needs to draw one tick: which cell of which sheet,
// where, and how large.
type Frame struct {
	PackID string
	State  component.StateName
	Facing component.Direction
	Row    int
	Index  int

	// Sheet is the asset path of the state's sheet.
	Sheet string
	// SheetOffsetX/Y position the sheet so the current cell sits at the
	// origin: -(Index*FrameW), -(Row*FrameH).
	SheetOffsetX     float64
	SheetOffsetY     float64
	SheetNaturalSize image.Point
	FrameW           float64
	FrameH           float64

	// Anchor is the screen point the cell is centered on.
	Anchor common.Vec2
	Scale  float64
	// FlipX asks the host to mirror the cell horizontally.
	FlipX bool
}

// Cell returns the sheet rectangle the frame shows. Edges are rounded
// separately so fractional cells tile the sheet without gaps.
func (f Frame) Cell() image.Rectangle {
	return image.Rect(
		int(math.Round(-f.SheetOffsetX)),
		int(math.Round(-f.SheetOffsetY)),
		int(math.Round(-f.SheetOffsetX+f.FrameW)),
		int(math.Round(-f.SheetOffsetY+f.FrameH)),
	)
}
