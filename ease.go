package solar

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// DefaultEasing eases out with a quadratic curve: fastest at the start,
// coming to rest at the target.
const DefaultEasing = "power1.out"

// easings maps easing ids to gween curves. Only curves that never overshoot
// are listed, so a transition's distance to target never grows.
var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"none":         ease.Linear,
	"power1.in":    ease.InQuad,
	"power1.out":   ease.OutQuad,
	"power1.inOut": ease.InOutQuad,
	"power2.in":    ease.InCubic,
	"power2.out":   ease.OutCubic,
	"power2.inOut": ease.InOutCubic,
	"power3.out":   ease.OutQuart,
	"power4.out":   ease.OutQuint,
	"sine.out":     ease.OutSine,
	"sine.inOut":   ease.InOutSine,
	"expo.out":     ease.OutExpo,
	"circ.out":     ease.OutCirc,
}

// Easing resolves an easing id.
func Easing(id string) (ease.TweenFunc, error) {
	fn, ok := easings[id]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", id)
	}
	return fn, nil
}

// EasingIDs returns the known easing ids, sorted.
func EasingIDs() []string {
	ids := make([]string, 0, len(easings))
	for id := range easings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
