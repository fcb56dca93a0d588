// Package focus holds the domain model shared by the presenter-intent
// inference engine: stable identifiers, the signal taxonomy, configuration,
// and the immutable event records the engine consumes and emits.
package focus

import "math"

// ScreenId is the opaque, stable identifier of a shared display within a
// session.
type ScreenId string

// Rect is an integer pixel rectangle in the unified coordinate space shared
// by all displays in a session.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether (x, y) falls inside the half-open rectangle
// [X, X+Width) x [Y, Y+Height), per spec.md §8's boundary convention: a
// point exactly on the right/bottom edge belongs to the next display, not
// this one.
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.X+r.Width) &&
		y >= float64(r.Y) && y < float64(r.Y+r.Height)
}

// DistanceTo returns the euclidean distance from (x, y) to the nearest
// point on r's boundary (0 if the point is inside r).
func (r Rect) DistanceTo(x, y float64) float64 {
	dx := 0.0
	if x < float64(r.X) {
		dx = float64(r.X) - x
	} else if x > float64(r.X+r.Width) {
		dx = x - float64(r.X+r.Width)
	}
	dy := 0.0
	if y < float64(r.Y) {
		dy = float64(r.Y) - y
	} else if y > float64(r.Y+r.Height) {
		dy = y - float64(r.Y+r.Height)
	}
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Sqrt(dx*dx + dy*dy)
}

// Display is a single shared display's bounds plus its DPI scale factor.
type Display struct {
	ID       ScreenId
	Bounds   Rect
	DPIScale float64
}

// DisplayBounds is the fixed-at-session-start (but atomically replaceable)
// set of displays. It preserves insertion order so that "iteration order of
// the bounds map" (spec.md §4.1 rule 3's tie-break) is deterministic rather
// than relying on Go's randomized map order.
type DisplayBounds struct {
	order []ScreenId
	byID  map[ScreenId]Display
}

// NewDisplayBounds builds a DisplayBounds from an ordered list of displays.
// Later entries with a duplicate ID overwrite earlier ones but keep their
// original position in iteration order.
func NewDisplayBounds(displays ...Display) DisplayBounds {
	db := DisplayBounds{byID: make(map[ScreenId]Display, len(displays))}
	for _, d := range displays {
		if _, exists := db.byID[d.ID]; !exists {
			db.order = append(db.order, d.ID)
		}
		db.byID[d.ID] = d
	}
	return db
}

// Get returns the display for id, if known.
func (b DisplayBounds) Get(id ScreenId) (Display, bool) {
	d, ok := b.byID[id]
	return d, ok
}

// Len returns the number of displays.
func (b DisplayBounds) Len() int {
	return len(b.order)
}

// Empty reports whether the bounds map has no displays.
func (b DisplayBounds) Empty() bool {
	return len(b.order) == 0
}

// First returns the first display in iteration order. Used to seed
// Engine.activeScreenId at construction.
func (b DisplayBounds) First() (ScreenId, bool) {
	if len(b.order) == 0 {
		return "", false
	}
	return b.order[0], true
}

// Ordered calls fn for each display in deterministic insertion order.
func (b DisplayBounds) Ordered(fn func(Display)) {
	for _, id := range b.order {
		fn(b.byID[id])
	}
}

// IntentSignal is an immutable record describing one low-level interaction
// event, already mapped into the unified coordinate space.
type IntentSignal struct {
	Type SignalType
	// ScreenID is set when the producer already knows the authoritative
	// display (e.g. the host OS tagged the event); nil means "let
	// attribution resolve it".
	ScreenID *ScreenId
	X, Y     float64
	// TimestampMs is a monotonic millisecond timestamp. The engine never
	// reads a clock itself; every comparison uses this field.
	TimestampMs int64
	// SpeedPxPerS is only meaningful when Type == SignalPointerMove.
	SpeedPxPerS float64
	// WindowDisplayID is set only when the OS reports which display holds
	// the focused window.
	WindowDisplayID *ScreenId
}

// OperatorAction is the closed set of explicit operator commands.
type OperatorAction int

const (
	ActionToggleAutoFocus OperatorAction = iota
	ActionToggleFreeze
	ActionManualSelect
	ActionClearManual
)

func (a OperatorAction) String() string {
	switch a {
	case ActionToggleAutoFocus:
		return "ToggleAutoFocus"
	case ActionToggleFreeze:
		return "ToggleFreeze"
	case ActionManualSelect:
		return "ManualSelect"
	case ActionClearManual:
		return "ClearManual"
	default:
		return "Unknown"
	}
}

// OperatorCommand is an explicit, rarely-delivered operator control message.
// ScreenID is only required for ActionManualSelect.
type OperatorCommand struct {
	Action      OperatorAction
	ScreenID    ScreenId
	TimestampMs int64
}

// Mode describes the engine's current control mode, derived from its state.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
	ModeFrozen Mode = "frozen"
)

// FocusChangeEvent is emitted on every authoritative transition.
type FocusChangeEvent struct {
	SessionID   string     `json:"sessionId"`
	ScreenID    ScreenId   `json:"screenId"`
	Reason      SignalType `json:"reason"`
	Confidence  float64    `json:"confidence"`
	DwellMs     int64      `json:"dwellMs"`
	Sequence    uint64     `json:"sequence"`
	TimestampMs int64      `json:"timestampMs"`
}

// FocusStateSnapshot summarizes the engine's current state for late joiners
// and mode-change notifications.
type FocusStateSnapshot struct {
	ActiveScreenID ScreenId `json:"activeScreenId"`
	Mode           Mode     `json:"mode"`
	Frozen         bool     `json:"frozen"`
	Sequence       uint64   `json:"sequence"`
	TimestampMs    int64    `json:"timestampMs"`
}

// Metrics is an append-only snapshot of the engine's counters. Counters
// never decrease across a session.
type Metrics struct {
	FocusChanges   uint64
	CooldownBlocks uint64
	DwellResets    uint64
	IdleBlocks     uint64
	SignalCounts   map[SignalType]uint64
}
