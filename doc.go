// Package motion sequences CSS-driven animations on cloned UI elements.
//
// A Motion describes one animation as an ordered list of step factories plus
// timing configuration. Run measures the target element, evaluates the
// factories, synthesizes an offset path and a keyframe rule from the
// resulting steps, and drives a clone of the element through the host
// Environment until the animation's total duration has elapsed. A Timeline
// chains motions and nested timelines into a strictly ordered sequence.
//
//	m := motion.New(env, el).
//		AddStep(func(mc motion.Context) (motion.Step, error) {
//			return motion.Step{Point: motion.Pt(mc.Rect.Left, mc.Rect.Top)}, nil
//		}).
//		AddStep(func(mc motion.Context) (motion.Step, error) {
//			return motion.Step{
//				Point: motion.Pt(mc.Rect.Left+240, mc.Rect.Top),
//				Style: map[string]string{"opacity": "0"},
//			}, nil
//		}).
//		Duration(600 * time.Millisecond).
//		Easing("ease-in-out")
//
//	tl := motion.NewTimeline().Add(m)
//	err := tl.Play(ctx)
//
// The engine never talks to a rendering engine directly; every capability it
// needs (measuring, cloning, style injection, timers) comes through the
// Environment interface, so the same code runs against a real browser bridge
// or the headless package.
package motion
