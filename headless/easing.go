package headless

import "github.com/fogleman/ease"

// easings maps CSS timing-function names onto easing curves. The standard
// keywords get their closest quadratic shapes; the extended names expose
// the rest of the easing family to scenarios that want them.
var easings = map[string]func(float64) float64{
	"linear":            ease.Linear,
	"ease":              ease.InOutQuad,
	"ease-in":           ease.InQuad,
	"ease-out":          ease.OutQuad,
	"ease-in-out":       ease.InOutQuad,
	"ease-in-cubic":     ease.InCubic,
	"ease-out-cubic":    ease.OutCubic,
	"ease-in-out-cubic": ease.InOutCubic,
	"ease-in-quart":     ease.InQuart,
	"ease-out-quart":    ease.OutQuart,
	"ease-in-out-quart": ease.InOutQuart,
	"ease-in-elastic":   ease.InElastic,
	"ease-out-elastic":  ease.OutElastic,
	"ease-in-bounce":    ease.InBounce,
	"ease-out-bounce":   ease.OutBounce,
}

// Easing resolves a CSS timing-function name, falling back to linear for
// names the headless renderer does not model.
func Easing(name string) func(float64) float64 {
	if fn, ok := easings[name]; ok {
		return fn
	}
	return ease.Linear
}
