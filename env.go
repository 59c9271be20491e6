package motion

import (
	"context"
	"time"
)

// Element is an opaque handle to a render-tree element. Handles are created
// and interpreted by the Environment; the engine never looks inside them.
type Element any

// KeyframeHandle identifies a registered keyframe rule for later removal.
type KeyframeHandle any

// Rect is the measured bounding box of an element in viewport coordinates.
type Rect struct {
	Width  float64
	Height float64
	Left   float64
	Top    float64
}

// Context carries the measured target element into step factories and hooks.
type Context struct {
	Node Element
	Rect Rect
}

// Environment provides the rendering capabilities the engine drives. The
// engine treats all of them as external collaborators: failures are returned
// to the caller untranslated and nothing is retried.
type Environment interface {
	// Measure returns the element's current bounding box.
	Measure(el Element) (Rect, error)

	// Clone returns a deep structural copy of the element, independent of
	// the original's subsequent mutation.
	Clone(el Element) (Element, error)

	// Insert adds the element to the render tree.
	Insert(el Element) error

	// Remove takes the element out of the render tree.
	Remove(el Element) error

	// ApplyStyle sets a batch of style properties on the element.
	ApplyStyle(el Element, style map[string]string) error

	// RegisterKeyframes injects a named keyframe rule, scoped globally for
	// the lifetime of the registration.
	RegisterKeyframes(name, rule string) (KeyframeHandle, error)

	// Unregister removes a previously registered keyframe rule.
	Unregister(h KeyframeHandle) error

	// Wait blocks until d has elapsed or ctx is done.
	Wait(ctx context.Context, d time.Duration) error
}
