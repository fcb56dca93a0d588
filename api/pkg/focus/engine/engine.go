// Package engine implements the focus state machine: spec.md §4.3's
// processing pipeline, §4.4's confidence model, and §4.6's operator
// commands. The engine is single-threaded cooperative (spec.md §5) — every
// exported method must be serialized by the caller; the engine itself never
// reads a clock or spawns a goroutine.
package engine

import (
	"math"

	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus"
	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus/attribute"
)

// cooldownPenalty is the confidence subtraction spec.md §4.3 step 9 and
// §4.4's last modifier both apply (deliberately, per spec.md §9's open
// question — see DESIGN.md).
const cooldownPenalty = 0.15

// ChangeSink receives authoritative focus-change events. It is the
// "explicit sink" rendition of spec.md §9's callback-shaped output note.
type ChangeSink interface {
	OnFocusChange(focus.FocusChangeEvent)
}

// StateSink receives focus-state refresh notifications: mode changes and
// optional stay-refreshes. Delivery is lossy; a receiver may coalesce.
type StateSink interface {
	OnFocusState(focus.FocusStateSnapshot)
}

// ChangeSinkFunc adapts a function to a ChangeSink.
type ChangeSinkFunc func(focus.FocusChangeEvent)

func (f ChangeSinkFunc) OnFocusChange(e focus.FocusChangeEvent) { f(e) }

// StateSinkFunc adapts a function to a StateSink.
type StateSinkFunc func(focus.FocusStateSnapshot)

func (f StateSinkFunc) OnFocusState(s focus.FocusStateSnapshot) { f(s) }

// Engine is the mutable, single-owner focus state machine described in
// spec.md §3's "Engine state" block. It must not be accessed concurrently;
// see spec.md §5 and api/pkg/focus/actor for the serialization discipline.
type Engine struct {
	sessionID string
	cfg       focus.Config
	bounds    focus.DisplayBounds

	activeScreenID focus.ScreenId
	hasActive      bool
	frozen         bool
	autoEnabled    bool
	manualOverride *focus.ScreenId

	lastSwitchTs    int64
	candidateID     focus.ScreenId
	hasCandidate    bool
	candidateSinceTs int64
	lastActivityTs  int64

	sequence uint64
	metrics  focus.Metrics

	changeSink ChangeSink
	stateSink  StateSink
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithChangeSink registers the focus-change sink.
func WithChangeSink(s ChangeSink) Option { return func(e *Engine) { e.changeSink = s } }

// WithStateSink registers the focus-state sink.
func WithStateSink(s StateSink) Option { return func(e *Engine) { e.stateSink = s } }

// New constructs an Engine for one session. activeScreenId is initialized
// to the first display in bounds, if any exist (spec.md §3). Returns a
// *focus.ConfigError if cfg is invalid.
func New(sessionID string, cfg focus.Config, bounds focus.DisplayBounds, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		sessionID:   sessionID,
		cfg:         cfg,
		bounds:      bounds,
		autoEnabled: true,
		metrics:     focus.Metrics{SignalCounts: make(map[focus.SignalType]uint64)},
	}
	if id, ok := bounds.First(); ok {
		e.activeScreenID = id
		e.hasActive = true
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// UpdateDisplays atomically replaces the display bounds map. Per spec.md §5
// this is safe to call from the engine's owning actor at any time; it does
// not change activeScreenId, candidate state, or mode.
func (e *Engine) UpdateDisplays(bounds focus.DisplayBounds) {
	e.bounds = bounds
}

// Metrics returns a snapshot of the append-only counters. Never mutates
// state.
func (e *Engine) Metrics() focus.Metrics {
	counts := make(map[focus.SignalType]uint64, len(e.metrics.SignalCounts))
	for k, v := range e.metrics.SignalCounts {
		counts[k] = v
	}
	return focus.Metrics{
		FocusChanges:   e.metrics.FocusChanges,
		CooldownBlocks: e.metrics.CooldownBlocks,
		DwellResets:    e.metrics.DwellResets,
		IdleBlocks:     e.metrics.IdleBlocks,
		SignalCounts:   counts,
	}
}

// Snapshot returns a FocusStateSnapshot reflecting current state. Callable
// at any time; never mutates state (spec.md §4.7).
func (e *Engine) Snapshot() focus.FocusStateSnapshot {
	return focus.FocusStateSnapshot{
		ActiveScreenID: e.activeScreenID,
		Mode:           e.mode(),
		Frozen:         e.frozen,
		Sequence:       e.sequence,
		TimestampMs:    e.lastSwitchTs,
	}
}

func (e *Engine) mode() focus.Mode {
	switch {
	case e.manualOverride != nil:
		return focus.ModeManual
	case e.frozen:
		return focus.ModeFrozen
	default:
		return focus.ModeAuto
	}
}

// ProcessSignal runs spec.md §4.3's pipeline for one IntentSignal. Every
// timestamp comparison uses s.TimestampMs; the engine never reads a clock.
func (e *Engine) ProcessSignal(s focus.IntentSignal) {
	now := s.TimestampMs

	// Step 1: signal accounting.
	e.metrics.SignalCounts[s.Type]++

	// Step 2: activity tracking.
	if s.Type.IsActivity() {
		e.lastActivityTs = now
	}

	// Step 3: freeze precedence.
	if e.frozen {
		return
	}

	// Step 4: auto-enabled precedence.
	if !e.autoEnabled {
		return
	}

	// Step 5: manual override precedence.
	if e.manualOverride != nil {
		if !e.hasActive || e.activeScreenID != *e.manualOverride {
			e.setActive(*e.manualOverride, focus.SignalManual, 1.0, now)
		}
		return
	}

	// Step 6: attribution.
	cand, ok := attribute.Attribute(e.bounds, s)
	if !ok {
		return
	}

	// Step 7: confidence computation.
	conf := e.confidence(s, cand, now)

	// Step 8: idle check. Activity signals updated lastActivityTs to now in
	// step 2 above, so they never trip this gate themselves; only
	// PointerMove/Hover traffic can be blocked by stale activity.
	if now-e.lastActivityTs > e.cfg.IdleMs {
		e.metrics.IdleBlocks++
		return
	}

	// Step 9: cooldown penalty.
	if now-e.lastSwitchTs <= e.cfg.CooldownMs && s.Type != focus.SignalManual {
		conf -= cooldownPenalty
		if conf < 0 {
			conf = 0
		}
		e.metrics.CooldownBlocks++
	}

	// Step 10: candidate tracking.
	if !e.hasCandidate || cand != e.candidateID {
		e.candidateID = cand
		e.hasCandidate = true
		e.candidateSinceTs = now
		e.metrics.DwellResets++
	}

	// Step 11: dwell gate.
	dwellNeeded := s.Type.DwellMs(e.cfg)
	if now-e.candidateSinceTs < dwellNeeded {
		return
	}

	// Step 12: hysteresis.
	if !e.hasActive || cand != e.activeScreenID {
		if conf >= e.cfg.SwitchThreshold {
			e.setActive(cand, s.Type, conf, now)
		}
		return
	}
	if conf >= e.cfg.StayThreshold {
		e.emitState(now)
	}
}

// confidence implements spec.md §4.4's base table plus additive modifiers,
// clamped to [0,1].
func (e *Engine) confidence(s focus.IntentSignal, cand focus.ScreenId, now int64) float64 {
	conf := s.Type.BaseConfidence()

	if s.WindowDisplayID != nil && *s.WindowDisplayID == cand {
		conf += 0.05
	}
	// Reinforcement applies when cand matches the screen already active and
	// now − candidateSinceTs is under 1s — see DESIGN.md's
	// "reinforcement modifier" open-question resolution: spec.md §8
	// scenario 1 requires a bare Click confirmation to land at exactly the
	// base confidence (0.95), which only holds if this modifier keys off
	// activeScreenId rather than the in-progress candidateScreenId.
	if e.hasActive && cand == e.activeScreenID && now-e.candidateSinceTs < 1000 {
		conf += 0.05
	}
	if s.Type == focus.SignalPointerMove && s.SpeedPxPerS > e.cfg.MovementSpeedHighPxPerS {
		conf -= 0.10
	}
	if (!e.hasActive || cand != e.activeScreenID) && now-e.lastSwitchTs <= e.cfg.CooldownMs {
		conf -= cooldownPenalty
	}

	return clamp01(conf)
}

// setActive atomically performs spec.md §4.3's setActive operation:
// increments sequence, computes dwellMs, updates active/lastSwitchTs,
// increments focusChanges, and invokes the change sink. When screen is
// already active, only lastSwitchTs is updated and no event is emitted.
func (e *Engine) setActive(screen focus.ScreenId, reason focus.SignalType, confidence float64, now int64) {
	changed := !e.hasActive || e.activeScreenID != screen

	dwell := now - e.candidateSinceTs
	if dwell < 0 {
		dwell = 0
	}

	e.activeScreenID = screen
	e.hasActive = true
	e.lastSwitchTs = now

	if !changed {
		return
	}

	e.sequence++
	e.metrics.FocusChanges++

	evt := focus.FocusChangeEvent{
		SessionID:   e.sessionID,
		ScreenID:    screen,
		Reason:      reason,
		Confidence:  round2(confidence),
		DwellMs:     dwell,
		Sequence:    e.sequence,
		TimestampMs: now,
	}
	if e.changeSink != nil {
		e.changeSink.OnFocusChange(evt)
	}
}

func (e *Engine) emitState(now int64) {
	if e.stateSink == nil {
		return
	}
	snap := e.Snapshot()
	snap.TimestampMs = now
	e.stateSink.OnFocusState(snap)
}

// HandleOperatorCommand implements spec.md §4.6. Operator commands bypass
// idle, cooldown, and dwell.
func (e *Engine) HandleOperatorCommand(cmd focus.OperatorCommand) {
	now := cmd.TimestampMs

	switch cmd.Action {
	case focus.ActionToggleAutoFocus:
		e.autoEnabled = !e.autoEnabled
		e.emitState(now)

	case focus.ActionToggleFreeze:
		wasFrozen := e.frozen
		e.frozen = !e.frozen
		if wasFrozen && !e.frozen {
			// Resume grace: motion-only candidates must re-accrue dwell.
			e.candidateSinceTs = now
		}
		e.emitState(now)

	case focus.ActionManualSelect:
		if _, ok := e.bounds.Get(cmd.ScreenID); !ok {
			return
		}
		id := cmd.ScreenID
		e.manualOverride = &id
		e.setActive(id, focus.SignalManual, 1.0, now)

	case focus.ActionClearManual:
		e.manualOverride = nil
		e.emitState(now)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
