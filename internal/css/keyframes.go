package css

import (
	"sort"
	"strings"
)

// A Stop is one keyframe: a timeline percentage and the style overrides
// applied at it. The stop always advances offset-distance to its own
// percentage so the clone's path progress tracks the timeline.
type Stop struct {
	Percent float64
	Style   map[string]string
}

// Spread resolves the percentage position of each stop. Explicit values
// pass through untouched; a nil entry is spread evenly across [0,100] by
// its index. A single implicit stop lands at 100 so the animation still
// travels the full path (the even-spacing formula has no answer for n == 1).
func Spread(at []*float64) []float64 {
	n := len(at)
	out := make([]float64, n)
	for i, a := range at {
		switch {
		case a != nil:
			out[i] = *a
		case n == 1:
			out[i] = 100
		default:
			out[i] = float64(i) / float64(n-1) * 100
		}
	}
	return out
}

// Block renders a complete @keyframes rule. Style overrides follow
// offset-distance in sorted property order so the output is deterministic.
func Block(name string, stops []Stop) string {
	var b strings.Builder
	b.WriteString("@keyframes ")
	b.WriteString(name)
	b.WriteString(" {")
	for _, s := range stops {
		pct := Number(s.Percent)
		b.WriteByte(' ')
		b.WriteString(pct)
		b.WriteString("% { offset-distance: ")
		b.WriteString(pct)
		b.WriteString("%;")
		for _, prop := range sortedKeys(s.Style) {
			b.WriteByte(' ')
			b.WriteString(prop)
			b.WriteString(": ")
			b.WriteString(s.Style[prop])
			b.WriteByte(';')
		}
		b.WriteString(" }")
	}
	b.WriteString(" }")
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
