package focus

// SignalType is the closed enumeration of interaction signals the focus
// engine can attribute and act on. The declaration order is also the
// priority order (high to low) used by the conflict resolver: a lower
// SignalType value always outranks a higher one.
type SignalType int

const (
	SignalManual SignalType = iota
	SignalClick
	SignalDragStart
	SignalDoubleClick
	SignalDragEnd
	SignalWindowFocus
	SignalTyping
	SignalScroll
	SignalGesture
	SignalHover
	SignalPointerMove

	signalTypeCount
)

var signalTypeNames = [signalTypeCount]string{
	SignalManual:      "Manual",
	SignalClick:       "Click",
	SignalDragStart:   "DragStart",
	SignalDoubleClick: "DoubleClick",
	SignalDragEnd:     "DragEnd",
	SignalWindowFocus: "WindowFocus",
	SignalTyping:      "Typing",
	SignalScroll:      "Scroll",
	SignalGesture:     "Gesture",
	SignalHover:       "Hover",
	SignalPointerMove: "PointerMove",
}

// String returns the name of the signal type, matching spec.md's SignalType
// literals. JSON encoding does not use it: a SignalType (such as the
// "reason" field of a FocusChangeEvent) is encoded as its integer value.
func (t SignalType) String() string {
	if t < 0 || int(t) >= len(signalTypeNames) {
		return "Unknown"
	}
	return signalTypeNames[t]
}

// Valid reports whether t is one of the closed enumeration's members.
func (t SignalType) Valid() bool {
	return t >= 0 && t < signalTypeCount
}

// IsActivity reports whether a signal of this type counts as "activity" for
// the idle gate (spec.md §4.3 step 2): every type except PointerMove and
// Hover.
func (t SignalType) IsActivity() bool {
	return t != SignalPointerMove && t != SignalHover
}

// BaseConfidence is the fixed base-confidence table from spec.md §4.4.
// Unknown/out-of-range types fall back to the PointerMove-equivalent floor
// of 0.40, per spec.md §7's "unknown signal type" error-handling rule.
func (t SignalType) BaseConfidence() float64 {
	switch t {
	case SignalManual:
		return 1.00
	case SignalClick, SignalDragStart, SignalDoubleClick:
		return 0.95
	case SignalWindowFocus, SignalTyping:
		return 0.90
	case SignalScroll, SignalGesture, SignalDragEnd:
		return 0.85
	case SignalHover:
		return 0.70
	case SignalPointerMove:
		return 0.40
	default:
		return 0.40
	}
}

// DwellMs looks up the dwell table from spec.md §4.3. Unknown types use the
// movement dwell, matching the table's "PointerMove, others" row.
func (t SignalType) DwellMs(cfg Config) int64 {
	switch t {
	case SignalManual:
		return 0
	case SignalClick, SignalDoubleClick, SignalDragStart:
		return cfg.ClickDwellMs
	case SignalTyping, SignalWindowFocus:
		return cfg.TypingDwellMs
	case SignalScroll, SignalGesture:
		return cfg.ScrollDwellMs
	case SignalHover:
		return cfg.HoverDwellMs
	default: // PointerMove and any unrecognized type
		return cfg.MovementDwellMs
	}
}

// Priority returns the conflict-resolution priority (lower wins), which is
// simply the declaration index into the closed enumeration.
func (t SignalType) Priority() int {
	return int(t)
}
