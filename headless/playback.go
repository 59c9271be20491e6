package headless

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	motion "github.com/novavovikov/chained-motion"
	"github.com/novavovikov/chained-motion/internal/css"
)

// Playback replays one animated clone from the CSS the engine generated:
// the offset path parsed back into curve segments, the keyframe stops, and
// the animation timing read off the clone's style.
type Playback struct {
	origin   motion.Point
	chords   []chord
	total    float64
	stops    []stop
	duration time.Duration
	delay    time.Duration
	easing   func(float64) float64
	reverse  bool
}

type stop struct {
	percent float64
	style   map[string]string
}

// PlaybackFor builds a Playback for a clone from its applied style and the
// keyframe rule it references. Rules are looked up in the registration
// history, so finished (already torn down) animations replay too.
func (e *Env) PlaybackFor(el motion.Element) (*Playback, error) {
	n, err := e.node(el)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	style := make(map[string]string, len(n.Style))
	for k, v := range n.Style {
		style[k] = v
	}
	name := style["animation-name"]
	var rule string
	found := false
	for i := len(e.history) - 1; i >= 0; i-- {
		if e.history[i].Name == name {
			rule = e.history[i].CSS
			found = true
			break
		}
	}
	e.mu.Unlock()

	if name == "" {
		return nil, fmt.Errorf("headless: element %s has no animation", n.ID)
	}
	if !found {
		return nil, fmt.Errorf("headless: no keyframes named %q were ever registered", name)
	}

	segs, err := parsePath(style["offset-path"])
	if err != nil {
		return nil, err
	}
	stops, err := parseKeyframes(rule)
	if err != nil {
		return nil, err
	}
	sort.Slice(stops, func(i, j int) bool { return stops[i].percent < stops[j].percent })

	duration, err := parseMillis(style["animation-duration"])
	if err != nil {
		return nil, err
	}
	delay, err := parseMillis(style["animation-delay"])
	if err != nil {
		return nil, err
	}

	chords := flatten(segs)
	total := 0.0
	for _, c := range chords {
		total += c.length
	}

	return &Playback{
		origin:   motion.Pt(parsePixels(style["left"]), parsePixels(style["top"])),
		chords:   chords,
		total:    total,
		stops:    stops,
		duration: duration,
		delay:    delay,
		easing:   Easing(style["animation-timing-function"]),
		reverse:  style["animation-direction"] == "reverse",
	}, nil
}

// Duration returns the animation duration of one iteration.
func (p *Playback) Duration() time.Duration {
	return p.duration
}

// Delay returns the animation's start delay.
func (p *Playback) Delay() time.Duration {
	return p.delay
}

// At returns the clone's viewport position and effective style overrides at
// an elapsed time since the animation started. Times before the delay and
// past the duration clamp to the first and last keyframe.
func (p *Playback) At(elapsed time.Duration) (motion.Point, map[string]string) {
	if len(p.stops) == 0 {
		return p.origin, map[string]string{}
	}

	t := 0.0
	if p.duration > 0 {
		t = float64(elapsed-p.delay) / float64(p.duration)
	}
	t = math.Max(0, math.Min(1, t))
	if p.reverse {
		t = 1 - t
	}

	offset, style := p.sample(t * 100)
	return p.origin.Add(p.pointAt(offset / 100)), style
}

// sample interpolates offset-distance and styles between the keyframe
// stops surrounding a timeline percentage.
func (p *Playback) sample(frac float64) (float64, map[string]string) {
	first, last := p.stops[0], p.stops[len(p.stops)-1]
	if frac <= first.percent {
		return first.percent, copyStyle(first.style)
	}
	if frac >= last.percent {
		return last.percent, copyStyle(last.style)
	}

	var prev, next stop
	for i := 0; i < len(p.stops)-1; i++ {
		if frac >= p.stops[i].percent && frac < p.stops[i+1].percent {
			prev, next = p.stops[i], p.stops[i+1]
			break
		}
	}

	span := next.percent - prev.percent
	if span == 0 {
		span = 0.001
	}
	eased := p.easing((frac - prev.percent) / span)

	offset := prev.percent + (next.percent-prev.percent)*eased
	return offset, blendStyles(prev.style, next.style, eased)
}

// chord is one straight piece of the flattened path.
type chord struct {
	a, b   motion.Point
	length float64
}

const flattenSteps = 16

func flatten(segs []segment) []chord {
	var out []chord
	for _, s := range segs {
		prev := s.eval(0)
		for i := 1; i <= flattenSteps; i++ {
			pt := s.eval(float64(i) / flattenSteps)
			out = append(out, chord{a: prev, b: pt, length: math.Hypot(pt.X-prev.X, pt.Y-prev.Y)})
			prev = pt
		}
	}
	return out
}

// pointAt maps an arc-length fraction of the whole path to a position,
// matching how offset-distance walks a CSS motion path.
func (p *Playback) pointAt(f float64) motion.Point {
	if len(p.chords) == 0 || p.total == 0 || f <= 0 {
		return motion.Pt(0, 0)
	}
	if f >= 1 {
		return p.chords[len(p.chords)-1].b
	}
	target := f * p.total
	walked := 0.0
	for _, c := range p.chords {
		if walked+c.length >= target {
			if c.length == 0 {
				return c.b
			}
			return c.a.Lerp(c.b, (target-walked)/c.length)
		}
		walked += c.length
	}
	return p.chords[len(p.chords)-1].b
}

// segment is one path command: a line or a cubic curve.
type segment struct {
	kind           byte // 'L' or 'C'
	p0, p1, p2, p3 motion.Point
}

func (s segment) eval(t float64) motion.Point {
	if s.kind == 'L' {
		return s.p0.Lerp(s.p3, t)
	}
	mt := 1 - t
	mt2, t2 := mt*mt, t*t
	mt3, t3 := mt2*mt, t2*t
	return motion.Point{
		X: mt3*s.p0.X + 3*mt2*t*s.p1.X + 3*mt*t2*s.p2.X + t3*s.p3.X,
		Y: mt3*s.p0.Y + 3*mt2*t*s.p1.Y + 3*mt*t2*s.p2.Y + t3*s.p3.Y,
	}
}

// parsePath reads the engine's path() output back into segments.
func parsePath(s string) ([]segment, error) {
	inner, ok := strings.CutPrefix(s, "path('")
	if !ok {
		return nil, fmt.Errorf("headless: not a path() expression: %q", s)
	}
	inner, ok = strings.CutSuffix(inner, "')")
	if !ok {
		return nil, fmt.Errorf("headless: unterminated path() expression: %q", s)
	}

	fields := strings.Fields(strings.ReplaceAll(inner, ",", " "))
	if len(fields) < 3 || fields[0] != "M" {
		return nil, fmt.Errorf("headless: path must start with a move command: %q", s)
	}
	cur, err := parsePoint(fields[1], fields[2])
	if err != nil {
		return nil, err
	}

	var segs []segment
	i := 3
	for i < len(fields) {
		switch fields[i] {
		case "L":
			if i+2 >= len(fields) {
				return nil, fmt.Errorf("headless: truncated line command in %q", s)
			}
			p, err := parsePoint(fields[i+1], fields[i+2])
			if err != nil {
				return nil, err
			}
			segs = append(segs, segment{kind: 'L', p0: cur, p3: p})
			cur = p
			i += 3
		case "C":
			if i+6 >= len(fields) {
				return nil, fmt.Errorf("headless: truncated curve command in %q", s)
			}
			p1, err := parsePoint(fields[i+1], fields[i+2])
			if err != nil {
				return nil, err
			}
			p2, err := parsePoint(fields[i+3], fields[i+4])
			if err != nil {
				return nil, err
			}
			p3, err := parsePoint(fields[i+5], fields[i+6])
			if err != nil {
				return nil, err
			}
			segs = append(segs, segment{kind: 'C', p0: cur, p1: p1, p2: p2, p3: p3})
			cur = p3
			i += 7
		default:
			return nil, fmt.Errorf("headless: unsupported path command %q in %q", fields[i], s)
		}
	}
	return segs, nil
}

func parsePoint(xs, ys string) (motion.Point, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return motion.Point{}, fmt.Errorf("headless: bad coordinate %q: %w", xs, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return motion.Point{}, fmt.Errorf("headless: bad coordinate %q: %w", ys, err)
	}
	return motion.Pt(x, y), nil
}

// parseKeyframes reads the engine's @keyframes output back into stops.
func parseKeyframes(rule string) ([]stop, error) {
	open := strings.Index(rule, "{")
	end := strings.LastIndex(rule, "}")
	if open < 0 || end <= open {
		return nil, fmt.Errorf("headless: malformed keyframes rule: %q", rule)
	}

	var stops []stop
	rest := rule[open+1 : end]
	for {
		blockOpen := strings.Index(rest, "{")
		if blockOpen < 0 {
			break
		}
		blockClose := strings.Index(rest, "}")
		if blockClose < blockOpen {
			return nil, fmt.Errorf("headless: malformed keyframe stop in %q", rule)
		}

		sel := strings.TrimSpace(rest[:blockOpen])
		percent, err := strconv.ParseFloat(strings.TrimSuffix(sel, "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("headless: bad stop selector %q: %w", sel, err)
		}

		style := map[string]string{}
		for _, decl := range strings.Split(rest[blockOpen+1:blockClose], ";") {
			decl = strings.TrimSpace(decl)
			if decl == "" {
				continue
			}
			prop, val, ok := strings.Cut(decl, ":")
			if !ok {
				return nil, fmt.Errorf("headless: bad declaration %q in %q", decl, rule)
			}
			style[strings.TrimSpace(prop)] = strings.TrimSpace(val)
		}
		delete(style, "offset-distance")

		stops = append(stops, stop{percent: percent, style: style})
		rest = rest[blockClose+1:]
	}
	return stops, nil
}

func copyStyle(style map[string]string) map[string]string {
	out := make(map[string]string, len(style))
	for k, v := range style {
		out[k] = v
	}
	return out
}

// blendStyles interpolates styles between two stops: hex colors blend in
// HCL space, plain numbers interpolate linearly, everything else switches
// discretely at the halfway point.
func blendStyles(from, to map[string]string, t float64) map[string]string {
	out := copyStyle(from)
	for k, v := range to {
		prev, ok := from[k]
		if !ok {
			if t >= 0.5 {
				out[k] = v
			}
			continue
		}
		out[k] = blendValue(prev, v, t)
	}
	return out
}

func blendValue(from, to string, t float64) string {
	if c1, err := colorful.Hex(from); err == nil {
		if c2, err := colorful.Hex(to); err == nil {
			return c1.BlendHcl(c2, t).Clamped().Hex()
		}
	}
	if a, err := strconv.ParseFloat(from, 64); err == nil {
		if b, err := strconv.ParseFloat(to, 64); err == nil {
			return css.Number(a + (b-a)*t)
		}
	}
	if t >= 0.5 {
		return to
	}
	return from
}

func parsePixels(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	return v
}

func parseMillis(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "ms"), 64)
	if err != nil {
		return 0, fmt.Errorf("headless: bad time value %q: %w", s, err)
	}
	return time.Duration(v * float64(time.Millisecond)), nil
}
