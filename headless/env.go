// Package headless implements motion.Environment without a browser. It
// keeps the style registry and render tree in memory and can replay the
// engine's own CSS output, which makes it the environment of choice for
// tests, CI and previews.
package headless

import (
	"context"
	"fmt"
	"sync"
	"time"

	motion "github.com/novavovikov/chained-motion"
)

// Node is an element in the headless render tree.
type Node struct {
	ID    string
	Rect  motion.Rect
	Style map[string]string

	clone bool
}

// Rule is one keyframe registration.
type Rule struct {
	Name string
	CSS  string
}

// Env is an in-memory rendering environment.
//
// Registrations, inserted clones and wait durations are also recorded in
// append-only histories that survive teardown, so a finished animation can
// still be inspected and replayed.
type Env struct {
	// TimeScale multiplies every Wait duration. The zero value elides
	// sleeping entirely, which keeps tests fast while the recorded wait
	// durations stay observable.
	TimeScale float64

	mu      sync.Mutex
	nodes   []*Node
	active  map[string]string
	history []Rule
	clones  []*Node
	waits   []time.Duration
}

type handle struct {
	name string
}

// NewEnv creates an environment with an empty render tree.
func NewEnv() *Env {
	return &Env{active: make(map[string]string)}
}

// AddNode declares an element in the render tree that motions can target.
func (e *Env) AddNode(id string, rect motion.Rect) *Node {
	n := &Node{ID: id, Rect: rect, Style: map[string]string{}}
	e.mu.Lock()
	e.nodes = append(e.nodes, n)
	e.mu.Unlock()
	return n
}

func (e *Env) node(el motion.Element) (*Node, error) {
	n, ok := el.(*Node)
	if !ok {
		return nil, fmt.Errorf("headless: foreign element %T", el)
	}
	return n, nil
}

// Measure returns the element's declared bounding box.
func (e *Env) Measure(el motion.Element) (motion.Rect, error) {
	n, err := e.node(el)
	if err != nil {
		return motion.Rect{}, err
	}
	return n.Rect, nil
}

// Clone returns a copy of the element with an independent style map.
func (e *Env) Clone(el motion.Element) (motion.Element, error) {
	n, err := e.node(el)
	if err != nil {
		return nil, err
	}
	style := make(map[string]string, len(n.Style))
	for k, v := range n.Style {
		style[k] = v
	}
	return &Node{ID: n.ID + "#clone", Rect: n.Rect, Style: style, clone: true}, nil
}

// Insert adds the element to the render tree.
func (e *Env) Insert(el motion.Element) error {
	n, err := e.node(el)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.nodes = append(e.nodes, n)
	if n.clone {
		e.clones = append(e.clones, n)
	}
	e.mu.Unlock()
	return nil
}

// Remove takes the element out of the render tree.
func (e *Env) Remove(el motion.Element) error {
	n, err := e.node(el)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, existing := range e.nodes {
		if existing == n {
			e.nodes = append(e.nodes[:i], e.nodes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("headless: element %s not in the render tree", n.ID)
}

// ApplyStyle merges the properties into the element's style.
func (e *Env) ApplyStyle(el motion.Element, style map[string]string) error {
	n, err := e.node(el)
	if err != nil {
		return err
	}
	e.mu.Lock()
	for k, v := range style {
		n.Style[k] = v
	}
	e.mu.Unlock()
	return nil
}

// RegisterKeyframes stores a named keyframe rule. Names must be unique
// among live registrations.
func (e *Env) RegisterKeyframes(name, rule string) (motion.KeyframeHandle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.active[name]; ok {
		return nil, fmt.Errorf("headless: keyframes %q already registered", name)
	}
	e.active[name] = rule
	e.history = append(e.history, Rule{Name: name, CSS: rule})
	return &handle{name: name}, nil
}

// Unregister removes a live keyframe rule.
func (e *Env) Unregister(h motion.KeyframeHandle) error {
	hh, ok := h.(*handle)
	if !ok {
		return fmt.Errorf("headless: foreign keyframe handle %T", h)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.active[hh.name]; !ok {
		return fmt.Errorf("headless: keyframes %q not registered", hh.name)
	}
	delete(e.active, hh.name)
	return nil
}

// Wait records d and sleeps for d scaled by TimeScale.
func (e *Env) Wait(ctx context.Context, d time.Duration) error {
	e.mu.Lock()
	e.waits = append(e.waits, d)
	scale := e.TimeScale
	e.mu.Unlock()

	if scale <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(float64(d) * scale))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InTree reports whether the element is currently in the render tree.
func (e *Env) InTree(el motion.Element) bool {
	n, err := e.node(el)
	if err != nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.nodes {
		if existing == n {
			return true
		}
	}
	return false
}

// Clones returns every clone ever inserted, in insertion order.
func (e *Env) Clones() []*Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Node, len(e.clones))
	copy(out, e.clones)
	return out
}

// ActiveRules returns the currently registered keyframe rules by name.
func (e *Env) ActiveRules() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.active))
	for k, v := range e.active {
		out[k] = v
	}
	return out
}

// Rules returns every keyframe rule ever registered, in registration order.
func (e *Env) Rules() []Rule {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Rule, len(e.history))
	copy(out, e.history)
	return out
}

// Waits returns the durations passed to Wait, in call order.
func (e *Env) Waits() []time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]time.Duration, len(e.waits))
	copy(out, e.waits)
	return out
}

var _ motion.Environment = (*Env)(nil)
