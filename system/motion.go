package system

import (
	"time"

	"github.com/milk9111/cursorpal/common"
	"github.com/milk9111/cursorpal/component"
)

// DefaultSmoothing is the EMA weight given to each new instantaneous
// velocity sample.
const DefaultSmoothing = 0.25

const minSampleGap = time.Millisecond

// MotionTracker turns irregular pointer samples into a smoothed velocity.
type MotionTracker struct {
	alpha float64

	pointer  common.Vec2
	lastT    time.Time
	hasLast  bool
	velocity component.Velocity
}

// NewMotionTracker creates a tracker with smoothing weight alpha in (0, 1].
func NewMotionTracker(alpha float64) *MotionTracker {
	m := &MotionTracker{}
	m.SetSmoothing(alpha)
	return m
}

// SetSmoothing changes the EMA weight without touching the current estimate.
// Out-of-range values fall back to DefaultSmoothing.
func (m *MotionTracker) SetSmoothing(alpha float64) {
	if !common.IsFinite(alpha) || alpha <= 0 || alpha > 1 {
		alpha = DefaultSmoothing
	}
	m.alpha = alpha
}

// Observe records a pointer sample taken at t. The gap to the previous sample
// is floored at 1ms so bursts and out-of-order timestamps stay finite. The
// first sample only sets the position.
func (m *MotionTracker) Observe(x, y float64, t time.Time) {
	if !common.IsFinite(x) || !common.IsFinite(y) {
		return
	}
	p := common.Vec2{X: x, Y: y}

	var instant common.Vec2
	if m.hasLast {
		dt := t.Sub(m.lastT)
		if dt < minSampleGap {
			dt = minSampleGap
		}
		instant = p.Sub(m.pointer).Scale(1 / dt.Seconds())
	}

	v := m.velocity.Vec().Scale(1 - m.alpha).Add(instant.Scale(m.alpha))
	if !v.IsFinite() {
		v = common.Vec2{}
	}
	m.velocity = component.Velocity{X: v.X, Y: v.Y, Speed: v.Len()}
	m.pointer = p
	m.lastT = t
	m.hasLast = true
}

// Velocity returns the current smoothed estimate.
func (m *MotionTracker) Velocity() component.Velocity {
	return m.velocity
}

// Pointer returns the last observed pointer position and whether any sample
// has been seen.
func (m *MotionTracker) Pointer() (common.Vec2, bool) {
	return m.pointer, m.hasLast
}

// LastMotion returns when the last sample arrived.
func (m *MotionTracker) LastMotion() (time.Time, bool) {
	return m.lastT, m.hasLast
}

// Reset forgets all samples.
func (m *MotionTracker) Reset() {
	alpha := m.alpha
	*m = MotionTracker{alpha: alpha}
}
