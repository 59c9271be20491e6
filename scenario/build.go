package scenario

import (
	"fmt"
	"time"

	motion "github.com/novavovikov/chained-motion"
)

// Resolver maps a declared element name to a live environment element.
type Resolver func(name string) (motion.Element, error)

// Build compiles every timeline in the document into a playable
// motion.Timeline, in declaration order.
func Build(doc *Document, env motion.Environment, resolve Resolver) ([]*motion.Timeline, error) {
	out := make([]*motion.Timeline, 0, len(doc.Timelines))
	for i := range doc.Timelines {
		tl, err := buildTimeline(&doc.Timelines[i], env, resolve)
		if err != nil {
			return nil, fmt.Errorf("timeline %d: %w", i, err)
		}
		out = append(out, tl)
	}
	return out, nil
}

func buildTimeline(def *Timeline, env motion.Environment, resolve Resolver) (*motion.Timeline, error) {
	tl := motion.NewTimeline()
	for i := range def.Entries {
		entry := &def.Entries[i]
		switch {
		case entry.Motion != nil && entry.Timeline != nil:
			return nil, fmt.Errorf("entry %d: motion and timeline are mutually exclusive", i)
		case entry.Motion != nil:
			m, err := buildMotion(entry.Motion, env, resolve)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			tl.Add(m)
		case entry.Timeline != nil:
			nested, err := buildTimeline(entry.Timeline, env, resolve)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			tl.Add(nested)
		default:
			return nil, fmt.Errorf("entry %d: neither motion nor timeline", i)
		}
	}
	return tl, nil
}

func buildMotion(def *Motion, env motion.Environment, resolve Resolver) (*motion.Motion, error) {
	if def.Target == "" {
		return nil, fmt.Errorf("motion has no target")
	}
	el, err := resolve(def.Target)
	if err != nil {
		return nil, fmt.Errorf("target %q: %w", def.Target, err)
	}

	m := motion.New(env, el)
	if def.Duration > 0 {
		m.Duration(time.Duration(def.Duration * float64(time.Millisecond)))
	}
	if def.Easing != "" {
		m.Easing(def.Easing)
	}
	if def.Delay > 0 {
		m.Delay(time.Duration(def.Delay * float64(time.Millisecond)))
	}
	if def.Repeat != 0 {
		m.Repeat(int(def.Repeat))
	}
	if def.Direction != "" {
		m.Direction(motion.Direction(def.Direction))
	}

	for _, st := range def.Steps {
		m.AddStep(stepFunc(st))
	}
	return m, nil
}

// stepFunc freezes one declared step into a factory. Relative steps resolve
// against the measured rect at run time, so re-running a scenario after the
// element moved produces the right path.
func stepFunc(st Step) motion.StepFunc {
	return func(mc motion.Context) (motion.Step, error) {
		p := motion.Pt(st.X, st.Y)
		if st.Relative {
			p = motion.Pt(mc.Rect.Left+st.X, mc.Rect.Top+st.Y)
		}
		return motion.Step{Point: p, At: st.At, Style: st.Style}, nil
	}
}
