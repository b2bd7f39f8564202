package component

import "github.com/milk9111/cursorpal/common"

// Velocity is the smoothed pointer velocity in px/sec.
type Velocity struct {
	X     float64
	Y     float64
	Speed float64
}

func (v Velocity) Vec() common.Vec2 {
	return common.Vec2{X: v.X, Y: v.Y}
}
