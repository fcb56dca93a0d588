// Package conflict implements the pure signal-conflict resolver used by
// callers that receive multiple near-simultaneous signals and must reduce
// them to one before handing off to the focus engine.
package conflict

import "github.com/sagarpandeyprofessional/focus-app/api/pkg/focus"

// Resolve picks a single winner from signals per spec.md §4.5:
//  1. lower SignalType priority number wins;
//  2. on tie, higher base confidence wins;
//  3. on tie, later TimestampMs wins;
//  4. stable for equal triples (first-seen wins).
//
// Resolve returns ok=false only when signals is empty.
func Resolve(signals []focus.IntentSignal) (focus.IntentSignal, bool) {
	if len(signals) == 0 {
		return focus.IntentSignal{}, false
	}

	winner := signals[0]
	for _, s := range signals[1:] {
		if better(s, winner) {
			winner = s
		}
	}
	return winner, true
}

// better reports whether candidate should replace current as the winner.
// Strict inequalities at every tier make the comparison stable: later
// elements only displace the winner when they are a genuine improvement.
func better(candidate, current focus.IntentSignal) bool {
	if candidate.Type.Priority() != current.Type.Priority() {
		return candidate.Type.Priority() < current.Type.Priority()
	}
	cc, cu := candidate.Type.BaseConfidence(), current.Type.BaseConfidence()
	if cc != cu {
		return cc > cu
	}
	return candidate.TimestampMs > current.TimestampMs
}
