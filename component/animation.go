package component

import (
	"math"
	"time"
)

// AnimationCursor tracks which cell of a sheet is showing. Frame is always in
// [0, frameCount) for the state it was last advanced with.
type AnimationCursor struct {
	State       StateName
	Row         int
	Frame       int
	Accumulated time.Duration
}

// NewAnimationCursor creates a cursor on the first frame of state.
func NewAnimationCursor(state StateName) AnimationCursor {
	return AnimationCursor{State: state}
}

// Reset switches to state and rewinds to the first frame. The row is kept;
// callers recompute it every tick.
func (c *AnimationCursor) Reset(state StateName) {
	if c == nil {
		return
	}
	c.State = state
	c.Frame = 0
	c.Accumulated = 0
}

// FrameInterval returns how long one frame shows at fps. Non-positive or
// non-finite fps yields 0, meaning the animation does not advance.
func FrameInterval(fps float64) time.Duration {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0
	}
	d := time.Duration(float64(time.Second) / fps)
	if d < 1 {
		d = 1
	}
	return d
}

// Advance adds dt to the accumulated time and steps the frame once per
// elapsed frame interval, wrapping modulo frameCount. A single large dt
// advances several frames instead of dropping time.
func (c *AnimationCursor) Advance(dt time.Duration, fps float64, frameCount int) {
	if c == nil {
		return
	}
	if frameCount <= 0 {
		c.Frame = 0
		c.Accumulated = 0
		return
	}
	c.Frame = wrap(c.Frame, frameCount)

	interval := FrameInterval(fps)
	if interval == 0 {
		return
	}
	if dt > 0 {
		c.Accumulated += dt
	}
	if c.Accumulated < interval {
		return
	}

	// same result as subtracting interval in a loop, without the loop
	steps := c.Accumulated / interval
	c.Accumulated -= steps * interval
	c.Frame = int((int64(c.Frame) + int64(steps)%int64(frameCount)) % int64(frameCount))
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
