package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/milk9111/cursorpal/component"
	"github.com/milk9111/cursorpal/pack"
)

func testRows() pack.RowTable {
	rows := pack.RowTable{}
	for i, dir := range []component.Direction{
		component.Front, component.FrontRight, component.Right, component.BackRight,
		component.Back, component.BackLeft, component.Left, component.FrontLeft,
	} {
		rows[dir] = i
	}
	return rows
}

func testPack(withSleep bool) *pack.Pack {
	p := &pack.Pack{
		ID: "retro/000-sample",
		States: map[component.StateName]*pack.State{
			component.StateIdle: {Sheet: "idle.png", FPS: 6, Frames: 4, Rows: testRows()},
			component.StateWalk: {Sheet: "walk.png", FPS: 10, Frames: 6, Rows: testRows()},
		},
	}
	if withSleep {
		p.States[component.StateSleep] = &pack.State{
			Sheet: "sleep.png", FPS: 2, Frames: 2, Rows: pack.RowTable{component.Front: 0},
		}
	}
	return p
}

func TestNextState(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		name     string
		current  component.StateName
		hasSleep bool
		speed    float64
		since    time.Duration
		want     component.StateName
	}{
		{"idle_stays_idle_when_slow", component.StateIdle, false, 10, 0, component.StateIdle},
		{"idle_to_walk", component.StateIdle, false, 200, 0, component.StateWalk},
		{"idle_holds_between_thresholds", component.StateIdle, false, 50, 0, component.StateIdle},
		{"walk_holds_between_thresholds", component.StateWalk, false, 50, 0, component.StateWalk},
		{"walk_to_idle_when_slow", component.StateWalk, false, 30, 0, component.StateIdle},
		{"walk_to_idle_after_timeout", component.StateWalk, false, 200, time.Second, component.StateIdle},
		{"stale_motion_does_not_walk", component.StateIdle, false, 200, time.Second, component.StateIdle},
		{"sleep_after_timeout", component.StateIdle, true, 0, 31 * time.Second, component.StateSleep},
		{"no_sleep_state", component.StateIdle, false, 0, time.Hour, component.StateIdle},
		{"wake_on_motion", component.StateSleep, true, 200, 0, component.StateWalk},
		{"sleep_without_pack_state", component.StateSleep, false, 0, time.Hour, component.StateIdle},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := NextState(c.current, c.hasSleep, c.speed, c.since, th)
			if got != c.want {
				t.Fatalf("expected %s, got %s", c.want, got)
			}
		})
	}
}

func TestAnimatorStationaryWithoutSleepStaysIdle(t *testing.T) {
	a := NewAnimator()
	p := testPack(false)
	th := DefaultThresholds()

	step := 16 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < 20*time.Second; elapsed += step {
		a.Update(p, component.Velocity{}, elapsed, step, th)
		if a.Cursor().State != component.StateIdle {
			t.Fatalf("at %v: expected idle, got %s", elapsed, a.Cursor().State)
		}
	}
}

func TestAnimatorWalksFacingRight(t *testing.T) {
	a := NewAnimator()
	p := testPack(false)

	a.Update(p, component.Velocity{X: 200, Speed: 200}, 0, 16*time.Millisecond, DefaultThresholds())

	c := a.Cursor()
	if c.State != component.StateWalk {
		t.Fatalf("expected walk, got %s", c.State)
	}
	if a.Facing() != component.Right {
		t.Fatalf("expected right facing, got %s", a.Facing())
	}
	if c.Row != 2 {
		t.Fatalf("expected row 2, got %d", c.Row)
	}
}

func TestAnimatorSleeps(t *testing.T) {
	a := NewAnimator()
	p := testPack(true)
	th := DefaultThresholds()

	a.Update(p, component.Velocity{}, 29*time.Second, 16*time.Millisecond, th)
	if a.Cursor().State != component.StateIdle {
		t.Fatalf("expected idle before the sleep timeout, got %s", a.Cursor().State)
	}
	a.Update(p, component.Velocity{}, 31*time.Second, 16*time.Millisecond, th)
	if a.Cursor().State != component.StateSleep {
		t.Fatalf("expected sleep after the timeout, got %s", a.Cursor().State)
	}
	if a.Cursor().Frame != 0 {
		t.Fatalf("expected the frame to reset on entering sleep, got %d", a.Cursor().Frame)
	}
}

func TestAnimatorRowFollowsFacingWithoutStateChange(t *testing.T) {
	a := NewAnimator()
	p := testPack(false)
	th := DefaultThresholds()
	dt := 50 * time.Millisecond

	a.Update(p, component.Velocity{X: 200, Speed: 200}, 0, dt, th)
	a.Update(p, component.Velocity{X: 200, Speed: 200}, 0, dt, th)
	frame := a.Cursor().Frame

	a.Update(p, component.Velocity{Y: -200, Speed: 200}, 0, 0, th)
	c := a.Cursor()
	if c.State != component.StateWalk || c.Row != 4 {
		t.Fatalf("expected walk on row 4, got %s row %d", c.State, c.Row)
	}
	if c.Frame != frame {
		t.Fatalf("expected the frame to survive a facing change, got %d want %d", c.Frame, frame)
	}
}

func TestAnimatorFlipXMirrorsMissingRows(t *testing.T) {
	a := NewAnimator()
	p := testPack(false)
	p.FlipX = true
	p.States[component.StateWalk].Rows = pack.RowTable{component.Front: 0, component.Right: 1}

	a.Update(p, component.Velocity{X: -200, Speed: 200}, 0, 0, DefaultThresholds())
	if a.Cursor().Row != 1 || !a.Mirrored() {
		t.Fatalf("expected mirrored right row, got row %d mirrored=%v", a.Cursor().Row, a.Mirrored())
	}
}

func TestAnimatorFrameStaysInRange(t *testing.T) {
	a := NewAnimator()
	p := testPack(true)
	th := DefaultThresholds()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		speed := rng.Float64() * 300
		since := time.Duration(rng.Int63n(int64(40 * time.Second)))
		dt := time.Duration(rng.Int63n(int64(2 * time.Second)))
		a.Update(p, component.Velocity{X: speed, Speed: speed}, since, dt, th)

		c := a.Cursor()
		st, ok := p.State(c.State)
		if !ok {
			t.Fatalf("cursor on unknown state %s", c.State)
		}
		if c.Frame < 0 || c.Frame >= st.Frames {
			t.Fatalf("frame %d out of range for %s (%d frames)", c.Frame, c.State, st.Frames)
		}
	}
}
