package motion

// A Step is a single stop on a motion's path: a target point, an optional
// timeline position and optional style overrides applied at that stop.
type Step struct {
	// Point is the target position in viewport coordinates. The first
	// step's point becomes the motion's origin; every point is normalized
	// against it so the path always starts at the element's own position.
	Point Point

	// At places the step at an explicit percentage of the animation
	// timeline, 0-100. When nil the step is spread evenly across [0,100]
	// by its index among all steps.
	At *float64

	// Style holds style-property overrides written verbatim into the
	// keyframe stop.
	Style map[string]string
}

// At wraps a percentage value for Step.At.
func At(pct float64) *float64 {
	return &pct
}

// A StepFunc produces a Step from the measured target element. Factories
// are evaluated once per Run, in the order they were added, all with the
// same measurement context. They should be free of side effects.
type StepFunc func(Context) (Step, error)
