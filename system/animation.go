package system

import (
	"time"

	"github.com/milk9111/cursorpal/component"
	"github.com/milk9111/cursorpal/pack"
)

// Thresholds tune the idle/walk/sleep transitions. Keeping IdleSpeed below
// WalkSpeed gives the walk state hysteresis.
type Thresholds struct {
	WalkSpeed    float64
	IdleSpeed    float64
	IdleTimeout  time.Duration
	SleepTimeout time.Duration
	Deadzone     float64
}

// DefaultThresholds are the stock transition settings.
func DefaultThresholds() Thresholds {
	return Thresholds{
		WalkSpeed:    60,
		IdleSpeed:    40,
		IdleTimeout:  180 * time.Millisecond,
		SleepTimeout: 30 * time.Second,
		Deadzone:     DefaultDeadzone,
	}
}

// NextState evaluates one transition from current.
//
// Sleep wins once the pointer has been still past SleepTimeout and the pack
// has a sleep state. Idle is wanted when the speed drops under IdleSpeed or
// no motion arrived within IdleTimeout; walk needs the speed above WalkSpeed
// and idle not wanted. Between the two speeds the state is kept.
func NextState(current component.StateName, hasSleep bool, speed float64, sinceMotion time.Duration, th Thresholds) component.StateName {
	if hasSleep && sinceMotion > th.SleepTimeout {
		return component.StateSleep
	}

	wantIdle := speed < th.IdleSpeed || sinceMotion > th.IdleTimeout
	wantWalk := speed > th.WalkSpeed && !wantIdle

	if current == component.StateWalk {
		if wantIdle {
			return component.StateIdle
		}
		return component.StateWalk
	}
	if wantWalk {
		return component.StateWalk
	}
	return component.StateIdle
}

// Animator is the animation state machine for one sprite.
type Animator struct {
	cursor   component.AnimationCursor
	facing   component.Direction
	mirrored bool
}

func NewAnimator() *Animator {
	a := &Animator{}
	a.Reset()
	return a
}

// Reset returns to the first idle frame facing front.
func (a *Animator) Reset() {
	a.cursor = component.NewAnimationCursor(component.StateIdle)
	a.facing = component.Front
	a.mirrored = false
}

// Update runs one tick: pick the state, recompute the facing row from the
// velocity (every tick, even without a state change), then advance frames
// by dt.
func (a *Animator) Update(p *pack.Pack, vel component.Velocity, sinceMotion, dt time.Duration, th Thresholds) {
	if p == nil {
		return
	}

	next := NextState(a.cursor.State, p.HasState(component.StateSleep), vel.Speed, sinceMotion, th)
	if next != a.cursor.State {
		a.cursor.Reset(next)
	}
	st, ok := p.State(a.cursor.State)
	if !ok {
		a.cursor.Reset(component.StateIdle)
		if st, ok = p.State(component.StateIdle); !ok {
			return
		}
	}

	a.facing = ClassifyWithDeadzone(vel.X, vel.Y, th.Deadzone)
	if p.FlipX {
		a.cursor.Row, a.mirrored = ResolveMirrored(st.Rows, a.facing)
	} else {
		a.cursor.Row, a.mirrored = ResolveRow(st.Rows, a.facing), false
	}

	a.cursor.Advance(dt, st.FPS, st.Frames)
}

func (a *Animator) Cursor() component.AnimationCursor {
	return a.cursor
}

// Facing is the direction classified on the last update.
func (a *Animator) Facing() component.Direction {
	return a.facing
}

// Mirrored reports whether the current row belongs to the mirrored facing and
// should be drawn flipped horizontally.
func (a *Animator) Mirrored() bool {
	return a.mirrored
}
