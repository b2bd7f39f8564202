package system

import (
	"github.com/milk9111/cursorpal/common"
	"github.com/milk9111/cursorpal/component"
)

// FollowParams are the coefficients the follow controller reads each tick.
type FollowParams struct {
	IdleSpeed float64
	Offset    float64
	LerpAlpha float64
	MaxStep   float64
}

// ComputeTarget returns where the sprite wants to be. Below IdleSpeed it
// perches offset pixels above the pointer; otherwise it trails offset pixels
// behind the direction of motion.
func ComputeTarget(pointer common.Vec2, vel component.Velocity, idleSpeed, offset float64) common.Vec2 {
	if vel.Speed < idleSpeed {
		return pointer.Add(common.Vec2{Y: -offset})
	}
	return pointer.Sub(vel.Vec().Normalize().Scale(offset))
}

// Step eases current toward target by lerpAlpha of the remaining distance,
// capping the displacement at maxStep while keeping its direction.
func Step(current, target common.Vec2, lerpAlpha, maxStep float64) common.Vec2 {
	proposed := common.ClampMagnitude(common.LerpVec(current, target, lerpAlpha).Sub(current), maxStep)
	if !proposed.IsFinite() {
		return current
	}
	return current.Add(proposed)
}

// Follower eases an anchor after the pointer.
type Follower struct {
	state component.FollowState
}

func NewFollower() *Follower {
	return &Follower{}
}

// Reset drops the anchor onto pointer when it is known, or leaves it to be
// placed on the first pointer the follower sees.
func (f *Follower) Reset(pointer common.Vec2, known bool) {
	f.state = component.FollowState{}
	if known {
		f.state = component.FollowState{Anchor: pointer, Target: pointer, Placed: true}
	}
}

// Update recomputes the target and takes one capped step toward it.
func (f *Follower) Update(pointer common.Vec2, known bool, vel component.Velocity, p FollowParams) {
	if !known {
		return
	}
	if !f.state.Placed {
		f.state = component.FollowState{Anchor: pointer, Target: pointer, Placed: true}
	}
	f.state.Target = ComputeTarget(pointer, vel, p.IdleSpeed, p.Offset)
	f.state.Anchor = Step(f.state.Anchor, f.state.Target, p.LerpAlpha, p.MaxStep)
}

func (f *Follower) State() component.FollowState {
	return f.state
}
