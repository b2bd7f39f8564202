package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/milk9111/cursorpal/component"
	"github.com/milk9111/cursorpal/config"
	"github.com/milk9111/cursorpal/pack"
	"github.com/milk9111/cursorpal/system"
)

var (
	// ErrSuperseded is returned by SwitchPack when a later switch was
	// requested before this one finished loading.
	ErrSuperseded = errors.New("engine: pack switch superseded")
	ErrNoPack     = errors.New("engine: no pack to start with")
)

// Loader loads packs by index id. *pack.Loader implements it.
type Loader interface {
	Load(ctx context.Context, id string) (*pack.Pack, error)
}

type Option func(*Engine)

// WithConfig replaces the default tuning.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithFrameHandler registers fn to receive every computed frame. It runs on
// the tick's goroutine, outside the engine lock.
func WithFrameHandler(fn func(Frame)) Option {
	return func(e *Engine) {
		e.onFrame = fn
	}
}

// Engine turns pointer samples into animated, eased sprite frames. All state
// is guarded by one mutex, so pointer events, config patches, pack switches
// and ticks may arrive from any goroutine.
type Engine struct {
	mu      sync.Mutex
	loader  Loader
	sched   Scheduler
	cfg     config.Config
	onFrame func(Frame)

	pack      *pack.Pack
	switchSeq uint64

	running  bool
	run      uint64
	handle   TickHandle
	motion   *system.MotionTracker
	animator *system.Animator
	follower *system.Follower
	started  time.Time
	lastTick time.Time
	ticked   bool

	frame    Frame
	hasFrame bool

	// stepHook runs at the start of every tick computation when set.
	stepHook func(now time.Time)
}

func New(loader Loader, sched Scheduler, opts ...Option) *Engine {
	e := &Engine{
		loader: loader,
		sched:  sched,
		cfg:    config.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins ticking with p, or with the current pack when p is nil. It
// recreates all per-run state; starting a running engine restarts it.
func (e *Engine) Start(p *pack.Pack) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p == nil {
		p = e.pack
	}
	if p == nil {
		return ErrNoPack
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("engine: start %s: %w", p.ID, err)
	}

	e.stopLocked()
	e.pack = p
	e.motion = system.NewMotionTracker(e.cfg.SmoothingAlpha)
	e.animator = system.NewAnimator()
	e.follower = system.NewFollower()
	e.running = true
	e.run++
	e.scheduleLocked()
	return nil
}

// Stop cancels the pending tick and discards per-run state. The pack is
// kept for a later Start.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	if !e.running {
		return
	}
	e.sched.CancelTick(e.handle)
	e.running = false
	e.run++
	e.motion = nil
	e.animator = nil
	e.follower = nil
	e.ticked = false
	e.frame = Frame{}
	e.hasFrame = false
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Observe feeds one pointer sample taken at t. Samples while stopped are
// dropped.
func (e *Engine) Observe(x, y float64, t time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.motion.Observe(x, y, t)
}

// SwitchPack loads id and swaps it in, resetting the animation and follow
// state. On failure the previous pack stays active. If another switch is
// requested while this one loads, this one returns ErrSuperseded.
func (e *Engine) SwitchPack(ctx context.Context, id string) error {
	e.mu.Lock()
	e.switchSeq++
	seq := e.switchSeq
	e.mu.Unlock()

	p, err := e.loader.Load(ctx, id)
	if err != nil {
		log.Printf("engine: switch to %s failed: %v", id, err)
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.switchSeq {
		return ErrSuperseded
	}
	e.pack = p
	if e.running {
		e.animator.Reset()
		pointer, known := e.motion.Pointer()
		e.follower.Reset(pointer, known)
	}
	return nil
}

// ApplyConfigPatch merges the finite fields of p. The tick loop and the
// animation state are left untouched; the next tick reads the new values.
func (e *Engine) ApplyConfigPatch(p config.Patch) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = e.cfg.Apply(p)
}

func (e *Engine) Config() config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

func (e *Engine) Pack() *pack.Pack {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pack
}

// Frame returns the last computed frame. ok is false until a tick has run
// with a known pointer.
func (e *Engine) Frame() (Frame, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame, e.hasFrame
}

func (e *Engine) scheduleLocked() {
	run := e.run
	e.handle = e.sched.ScheduleNextTick(func(now time.Time) {
		e.tick(run, now)
	})
}

func (e *Engine) tick(run uint64, now time.Time) {
	e.mu.Lock()
	if !e.running || run != e.run {
		e.mu.Unlock()
		return
	}
	f, ok := e.stepLocked(now)
	if ok {
		e.frame = f
		e.hasFrame = true
	}
	handler := e.onFrame
	e.scheduleLocked()
	e.mu.Unlock()

	if ok && handler != nil {
		deliver(handler, f)
	}
}

func deliver(handler func(Frame), f Frame) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine: frame handler panicked: %v", r)
		}
	}()
	handler(f)
}

func (e *Engine) stepLocked(now time.Time) (f Frame, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("engine: tick failed: %v", r)
			f, ok = Frame{}, false
		}
	}()

	if e.stepHook != nil {
		e.stepHook(now)
	}

	cfg := e.cfg
	var dt time.Duration
	if e.ticked {
		dt = max(now.Sub(e.lastTick), 0)
	} else {
		e.started = now
	}
	e.lastTick = now
	e.ticked = true

	since := now.Sub(e.started)
	if last, seen := e.motion.LastMotion(); seen {
		since = now.Sub(last)
	}
	vel := e.motion.Velocity()

	e.animator.Update(e.pack, vel, since, dt, system.Thresholds{
		WalkSpeed:    cfg.WalkSpeed,
		IdleSpeed:    cfg.IdleSpeed,
		IdleTimeout:  cfg.IdleTimeout,
		SleepTimeout: cfg.SleepTimeout,
		Deadzone:     cfg.FacingDeadzone,
	})

	pointer, known := e.motion.Pointer()
	e.follower.Update(pointer, known, vel, system.FollowParams{
		IdleSpeed: cfg.IdleSpeed,
		Offset:    cfg.Offset,
		LerpAlpha: cfg.LerpAlpha,
		MaxStep:   cfg.MaxStep,
	})

	follow := e.follower.State()
	cursor := e.animator.Cursor()
	st, hasState := e.pack.State(cursor.State)
	if !follow.Placed || !hasState {
		return Frame{}, false
	}

	anchor := follow.Anchor
	if cursor.State == component.StateIdle {
		anchor.Y += bob(now.Sub(e.started), cfg.BobAmplitude, cfg.BobPeriod)
	}

	return Frame{
		PackID:           e.pack.ID,
		State:            cursor.State,
		Facing:           e.animator.Facing(),
		Row:              cursor.Row,
		Index:            cursor.Frame,
		Sheet:            st.SheetPath,
		SheetOffsetX:     -float64(cursor.Frame) * st.Frame.W,
		SheetOffsetY:     -float64(cursor.Row) * st.Frame.H,
		SheetNaturalSize: st.SheetSize,
		FrameW:           st.Frame.W,
		FrameH:           st.Frame.H,
		Anchor:           anchor,
		Scale:            cfg.Scale,
		FlipX:            e.animator.Mirrored(),
	}, true
}

// bob is the idle hover offset in whole pixels.
func bob(elapsed time.Duration, amplitude float64, period time.Duration) float64 {
	if amplitude == 0 || period <= 0 {
		return 0
	}
	phase := float64(elapsed) / float64(period)
	return math.Round(math.Sin(2*math.Pi*phase) * amplitude)
}
