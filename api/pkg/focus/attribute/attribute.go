// Package attribute maps a raw intent signal to at most one display.
// Attribute is a pure function over the current focus.DisplayBounds map; it
// never mutates state and never fails loudly — an unattributable signal
// simply yields (focus.ScreenId(""), false), which the caller (the focus
// engine) treats as "suppress this signal".
package attribute

import "github.com/sagarpandeyprofessional/focus-app/api/pkg/focus"

// Attribute implements spec.md §4.1's four ordered rules:
//  1. A signal-carried ScreenID that the bounds map knows about wins
//     unconditionally.
//  2. A WindowFocus signal with a known WindowDisplayID wins.
//  3. Otherwise, point-in-rect; if no rect contains the point, the display
//     with the highest proximity (1 / (1 + distance)) wins, ties broken by
//     the bounds map's iteration order.
//  4. An empty bounds map yields no attribution.
func Attribute(bounds focus.DisplayBounds, s focus.IntentSignal) (focus.ScreenId, bool) {
	if bounds.Empty() {
		return "", false
	}

	if s.ScreenID != nil {
		if _, ok := bounds.Get(*s.ScreenID); ok {
			return *s.ScreenID, true
		}
	}

	if s.Type == focus.SignalWindowFocus && s.WindowDisplayID != nil {
		if _, ok := bounds.Get(*s.WindowDisplayID); ok {
			return *s.WindowDisplayID, true
		}
	}

	return attributePoint(bounds, s.X, s.Y)
}

// attributePoint resolves (x, y) by containment, falling back to nearest
// proximity. Iteration is in the bounds map's deterministic insertion
// order so that proximity ties resolve deterministically.
func attributePoint(bounds focus.DisplayBounds, x, y float64) (focus.ScreenId, bool) {
	var (
		found       bool
		containedID focus.ScreenId
		containedN  int

		bestID    focus.ScreenId
		bestScore = -1.0
		haveBest  bool
	)

	bounds.Ordered(func(d focus.Display) {
		if d.Bounds.Contains(x, y) {
			if !found {
				containedID = d.ID
				found = true
			}
			containedN++
			return
		}
		score := proximity(d.Bounds, x, y)
		if !haveBest || score > bestScore {
			bestScore = score
			bestID = d.ID
			haveBest = true
		}
	})

	if found && containedN == 1 {
		return containedID, true
	}
	// Zero or multiple containing rectangles (the latter shouldn't happen
	// given the non-overlap invariant, but we don't trust it blindly):
	// fall back to nearest proximity across every display, including any
	// that did contain the point (proximity of a contained point is
	// undefined as "distance to rectangle" is 0, i.e. score 1.0, so a
	// contained display still wins the proximity fallback).
	if found && containedN > 1 {
		bestScore = -1
		haveBest = false
		bounds.Ordered(func(d focus.Display) {
			score := proximity(d.Bounds, x, y)
			if !haveBest || score > bestScore {
				bestScore = score
				bestID = d.ID
				haveBest = true
			}
		})
	}
	if !haveBest {
		return "", false
	}
	return bestID, true
}

func proximity(r focus.Rect, x, y float64) float64 {
	return 1.0 / (1.0 + r.DistanceTo(x, y))
}
