package motion

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/novavovikov/chained-motion/internal/css"
)

// Direction selects the playback direction of the keyframe animation.
type Direction string

const (
	DirectionNormal  Direction = "normal"
	DirectionReverse Direction = "reverse"
)

// Infinite is the Repeat value for a motion that never stops on its own.
// An infinite motion resolves Run immediately after starting the animation
// and leaves its clone and keyframe rule in place; cleanup is the caller's
// responsibility.
const Infinite = -1

// A Hook runs before or after a motion's animation. Hooks receive the same
// measurement context step factories receive and may block; the engine waits
// for them and a failure propagates to the caller of Run.
type Hook func(ctx context.Context, mc Context) error

// config is the mutable record the fluent setters write to. It is read once,
// as a snapshot, at the start of each Run.
type config struct {
	duration  time.Duration
	easing    string
	delay     time.Duration
	repeat    int
	direction Direction
}

// Motion builds and plays one animation on one element. The zero value is
// not usable; create motions with New. Setters mutate the motion in place
// and return it for chaining; none of them take effect until Run.
//
// Run may be called any number of times. Each call replays the same
// configuration but produces its own clone, keyframe rule and animation
// name, so concurrent runs of the same motion do not collide.
type Motion struct {
	env    Environment
	target Element
	steps  []StepFunc
	cfg    config
	before Hook
	after  Hook
}

// New creates a Motion for target with the default configuration: one
// second, linear easing, no delay, a single iteration, normal direction.
func New(env Environment, target Element) *Motion {
	return &Motion{
		env:    env,
		target: target,
		cfg: config{
			duration:  time.Second,
			easing:    "linear",
			repeat:    1,
			direction: DirectionNormal,
		},
	}
}

// AddStep appends a step factory to the motion's path. Factories are not
// called until Run, and then in append order.
func (m *Motion) AddStep(fn StepFunc) *Motion {
	m.steps = append(m.steps, fn)
	return m
}

// Duration sets the animation duration.
func (m *Motion) Duration(d time.Duration) *Motion {
	m.cfg.duration = d
	return m
}

// Easing sets the timing function by its CSS name. The value is handed to
// the environment untouched; names the environment does not understand fail
// however the environment fails.
func (m *Motion) Easing(name string) *Motion {
	m.cfg.easing = name
	return m
}

// Delay sets the time the animation waits before starting each iteration.
func (m *Motion) Delay(d time.Duration) *Motion {
	m.cfg.delay = d
	return m
}

// Repeat sets the iteration count. Pass Infinite for an animation that
// never ends. Values are not validated here.
func (m *Motion) Repeat(n int) *Motion {
	m.cfg.repeat = n
	return m
}

// Direction sets the playback direction.
func (m *Motion) Direction(dir Direction) *Motion {
	m.cfg.direction = dir
	return m
}

// Before sets the hook invoked after measuring and before anything else.
// A failing before hook aborts the run with no visible effect. The last
// call wins.
func (m *Motion) Before(h Hook) *Motion {
	m.before = h
	return m
}

// After sets the hook invoked once the animation has completed and its
// artifacts are torn down. The last call wins.
func (m *Motion) After(h Hook) *Motion {
	m.after = h
	return m
}

// Play runs the motion to completion. It makes Motion a Player so motions
// and nested timelines can share a timeline queue.
func (m *Motion) Play(ctx context.Context) error {
	return m.Run(ctx)
}

// Run executes the motion: measure the target, run the before hook,
// evaluate the step factories, synthesize the offset path and keyframe
// rule, animate a clone of the target, wait out the animation, tear the
// clone and rule down together, then run the after hook.
//
// A motion with no steps is a valid no-op: both hooks still run, nothing
// is cloned or registered. With Repeat(Infinite) Run returns as soon as the
// clone is animating; the clone and rule are never torn down by the engine.
func (m *Motion) Run(ctx context.Context) error {
	cfg := m.cfg

	rect, err := m.env.Measure(m.target)
	if err != nil {
		return err
	}
	mc := Context{Node: m.target, Rect: rect}

	if m.before != nil {
		if err := m.before(ctx, mc); err != nil {
			return fmt.Errorf("before hook: %w", err)
		}
	}

	steps := make([]Step, 0, len(m.steps))
	for i, fn := range m.steps {
		step, err := fn(mc)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}

	if len(steps) == 0 {
		return m.runAfter(ctx, mc)
	}

	origin := steps[0].Point
	points := make([]css.Point, len(steps))
	at := make([]*float64, len(steps))
	for i, s := range steps {
		p := s.Point.Sub(origin)
		points[i] = css.Point{X: p.X, Y: p.Y}
		at[i] = s.At
	}

	percents := css.Spread(at)
	stops := make([]css.Stop, len(steps))
	for i, s := range steps {
		stops[i] = css.Stop{Percent: percents[i], Style: s.Style}
	}

	name := nextAnimationName()
	handle, err := m.env.RegisterKeyframes(name, css.Block(name, stops))
	if err != nil {
		return err
	}
	Logger().Debug("registered keyframes", "name", name, "steps", len(steps))

	clone, err := m.env.Clone(m.target)
	if err != nil {
		return err
	}
	if err := m.env.ApplyStyle(clone, cloneStyle(cfg, rect, css.OffsetPath(points), name)); err != nil {
		return err
	}
	if err := m.env.Insert(clone); err != nil {
		return err
	}

	if cfg.repeat != Infinite {
		total := (cfg.duration + cfg.delay) * time.Duration(cfg.repeat)
		if err := m.env.Wait(ctx, total); err != nil {
			return err
		}
		// The clone and its rule go away together, never one without
		// the other.
		if err := m.env.Remove(clone); err != nil {
			return err
		}
		if err := m.env.Unregister(handle); err != nil {
			return err
		}
		Logger().Debug("motion complete", "name", name, "total", total)
	}

	return m.runAfter(ctx, mc)
}

func (m *Motion) runAfter(ctx context.Context, mc Context) error {
	if m.after == nil {
		return nil
	}
	if err := m.after(ctx, mc); err != nil {
		return fmt.Errorf("after hook: %w", err)
	}
	return nil
}

// cloneStyle positions the clone at the measured rect, strips it from
// normal layout flow and attaches the generated path and animation.
func cloneStyle(cfg config, rect Rect, path, name string) map[string]string {
	iterations := strconv.Itoa(cfg.repeat)
	if cfg.repeat == Infinite {
		iterations = "infinite"
	}
	return map[string]string{
		"position":       "fixed",
		"left":           px(rect.Left),
		"top":            px(rect.Top),
		"width":          px(rect.Width),
		"height":         px(rect.Height),
		"margin":         "0",
		"z-index":        "2147483647",
		"pointer-events": "none",

		"offset-path":     path,
		"offset-distance": "0%",

		"animation-name":            name,
		"animation-duration":        millis(cfg.duration),
		"animation-timing-function": cfg.easing,
		"animation-delay":           millis(cfg.delay),
		"animation-iteration-count": iterations,
		"animation-direction":       string(cfg.direction),
		"animation-fill-mode":       "forwards",
	}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}

// Animation names must not collide across concurrently live motions,
// including motions driven by other processes sharing one style registry.
// A per-process random nonce plus a counter keeps them unique.
var (
	nameNonce   = newNonce()
	nameCounter atomic.Uint64
)

func newNonce() string {
	var b [4]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func nextAnimationName() string {
	return fmt.Sprintf("motion-%s-%d", nameNonce, nameCounter.Add(1))
}
