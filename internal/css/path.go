// Package css synthesizes the offset-path and @keyframes strings the engine
// hands to its rendering environment. The exact formatting is a
// compatibility contract, not an implementation detail: a browser consumes
// these strings verbatim, so numbers and separators must come out the same
// on every run.
package css

import (
	"strconv"
	"strings"
)

// Point is a path coordinate relative to the motion's origin.
type Point struct {
	X, Y float64
}

// Number formats v with no exponent and no trailing zeros, so 100 renders
// as "100" and 10.5 as "10.5".
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// OffsetPath renders normalized points as a CSS path() expression starting
// at the origin.
//
// A single point becomes one straight segment. Multiple points become cubic
// segments consuming the flat point list at indices (i, i+1, i+2) with i
// starting at 1 and advancing by 2, so each segment's first control point
// is the same array element as the previous segment's endpoint. When the
// window runs past the end of the list the last point is repeated. Point
// counts of the wrong parity therefore collapse their final segment into a
// degenerate curve; that indexing is part of the wire contract and is kept
// as is.
func OffsetPath(points []Point) string {
	var b strings.Builder
	b.WriteString("path('M 0 0")
	if len(points) == 1 {
		b.WriteString(" L ")
		writePoint(&b, points[0])
	} else {
		last := len(points) - 1
		for i := 1; i < len(points); i += 2 {
			b.WriteString(" C ")
			writePoint(&b, points[i])
			b.WriteString(", ")
			writePoint(&b, points[min(i+1, last)])
			b.WriteString(", ")
			writePoint(&b, points[min(i+2, last)])
		}
	}
	b.WriteString("')")
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(Number(p.X))
	b.WriteByte(' ')
	b.WriteString(Number(p.Y))
}
