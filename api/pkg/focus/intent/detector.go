// Package intent turns raw pointer polling and discrete host events into
// focus.IntentSignal values, per spec.md §4.2. A Detector owns nothing about
// displays or confidence; it only samples, synthesizes hover, and forwards
// discrete injections onto its output channel.
package intent

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus"
)

// CursorProvider is a synchronous function returning the current pointer
// position and, optionally, the display the OS reports the cursor is on.
type CursorProvider func() (x, y float64, hostDisplayID *focus.ScreenId)

// Config configures polling cadence and hover/movement thresholds.
type Config struct {
	CursorPollIntervalMs int64
	MovementThresholdPx  float64
	HoverRadiusPx        float64
	HoverThresholdMs     int64
}

// DefaultConfig returns spec.md §4.2's stated defaults.
func DefaultConfig() Config {
	return Config{
		CursorPollIntervalMs: 50,
		MovementThresholdPx:  3,
		HoverRadiusPx:        8,
		HoverThresholdMs:     300,
	}
}

// Detector samples a CursorProvider on a ticker and exposes inject-methods
// for discrete host events. All state mutation happens on the polling
// goroutine or under mu; the inject methods are safe to call from any
// goroutine, matching api/pkg/desktop/input.go's handler-invoked-from-many-
// connections shape.
type Detector struct {
	cfg      Config
	provider CursorProvider
	logger   *slog.Logger

	out chan focus.IntentSignal

	mu           sync.Mutex
	lastX, lastY float64
	lastSampleTs int64
	haveSample   bool

	hoverX, hoverY  float64
	hoverSinceTs    int64
	hoverEmitted    bool
	haveHoverAnchor bool

	injectCount int
}

// New constructs a Detector. logger defaults to slog.Default() if nil,
// matching api/pkg/desktop's convention of a required but nil-safe logger
// field.
func New(cfg Config, provider CursorProvider, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{
		cfg:      cfg,
		provider: provider,
		logger:   logger,
		out:      make(chan focus.IntentSignal, 256),
	}
}

// Signals returns the channel IntentSignal values are delivered on. Callers
// should drain it continuously; Run blocks on send if the buffer fills.
func (d *Detector) Signals() <-chan focus.IntentSignal {
	return d.out
}

// Run polls the cursor provider at cfg.CursorPollIntervalMs until ctx is
// canceled, then closes the output channel. Intended to run on its own
// goroutine, mirroring api/pkg/desktop/input.go's runInputBridge.
func (d *Detector) Run(ctx context.Context) {
	interval := time.Duration(d.cfg.CursorPollIntervalMs) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer close(d.out)

	d.logger.Info("intent detector started", "poll_interval_ms", d.cfg.CursorPollIntervalMs)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("intent detector stopped")
			return
		case <-ticker.C:
			d.poll(time.Now().UnixMilli())
		}
	}
}

func (d *Detector) poll(nowMs int64) {
	x, y, hostDisplayID := d.provider()

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.haveSample {
		d.lastX, d.lastY, d.lastSampleTs = x, y, nowMs
		d.haveSample = true
		d.resetHoverAnchorLocked(x, y, nowMs)
		return
	}

	dist := euclid(x, y, d.lastX, d.lastY)
	dt := nowMs - d.lastSampleTs
	var speed float64
	if dt > 0 {
		speed = dist / float64(dt) * 1000
	}

	if dist >= d.cfg.MovementThresholdPx {
		d.send(focus.IntentSignal{
			Type:        focus.SignalPointerMove,
			X:           x,
			Y:           y,
			SpeedPxPerS: speed,
			ScreenID:    hostDisplayID,
			TimestampMs: nowMs,
		})
	}

	d.trackHoverLocked(x, y, hostDisplayID, nowMs)

	d.lastX, d.lastY, d.lastSampleTs = x, y, nowMs
}

func (d *Detector) trackHoverLocked(x, y float64, hostDisplayID *focus.ScreenId, nowMs int64) {
	if !d.haveHoverAnchor || euclid(x, y, d.hoverX, d.hoverY) > d.cfg.HoverRadiusPx {
		d.resetHoverAnchorLocked(x, y, nowMs)
		return
	}
	if !d.hoverEmitted && nowMs-d.hoverSinceTs >= d.cfg.HoverThresholdMs {
		d.hoverEmitted = true
		d.send(focus.IntentSignal{
			Type:        focus.SignalHover,
			X:           x,
			Y:           y,
			ScreenID:    hostDisplayID,
			TimestampMs: nowMs,
		})
	}
}

func (d *Detector) resetHoverAnchorLocked(x, y float64, nowMs int64) {
	d.hoverX, d.hoverY, d.hoverSinceTs = x, y, nowMs
	d.hoverEmitted = false
	d.haveHoverAnchor = true
}

// OnMouseClick injects a Click or DoubleClick signal at the given wall-clock
// time.
func (d *Detector) OnMouseClick(x, y float64, isDouble bool, nowMs int64) {
	typ := focus.SignalClick
	if isDouble {
		typ = focus.SignalDoubleClick
	}
	d.sendDiscrete(focus.IntentSignal{Type: typ, X: x, Y: y, TimestampMs: nowMs})
}

// OnDragStart injects a DragStart signal.
func (d *Detector) OnDragStart(x, y float64, nowMs int64) {
	d.sendDiscrete(focus.IntentSignal{Type: focus.SignalDragStart, X: x, Y: y, TimestampMs: nowMs})
}

// OnDragEnd injects a DragEnd signal.
func (d *Detector) OnDragEnd(x, y float64, nowMs int64) {
	d.sendDiscrete(focus.IntentSignal{Type: focus.SignalDragEnd, X: x, Y: y, TimestampMs: nowMs})
}

// OnTyping injects a Typing signal. When windowDisplayID is nil, the last
// polled cursor position is used as (x, y), per spec.md §4.2.
func (d *Detector) OnTyping(windowDisplayID *focus.ScreenId, nowMs int64) {
	d.mu.Lock()
	x, y := d.lastX, d.lastY
	d.mu.Unlock()
	d.sendDiscrete(focus.IntentSignal{Type: focus.SignalTyping, X: x, Y: y, WindowDisplayID: windowDisplayID, TimestampMs: nowMs})
}

// OnScroll injects a Scroll signal.
func (d *Detector) OnScroll(x, y float64, nowMs int64) {
	d.sendDiscrete(focus.IntentSignal{Type: focus.SignalScroll, X: x, Y: y, TimestampMs: nowMs})
}

// OnWindowFocusChange injects a WindowFocus signal.
func (d *Detector) OnWindowFocusChange(windowDisplayID focus.ScreenId, nowMs int64) {
	id := windowDisplayID
	d.sendDiscrete(focus.IntentSignal{Type: focus.SignalWindowFocus, WindowDisplayID: &id, TimestampMs: nowMs})
}

func (d *Detector) sendDiscrete(s focus.IntentSignal) {
	d.mu.Lock()
	d.injectCount++
	count := d.injectCount
	d.mu.Unlock()

	if count <= 5 || count%100 == 0 {
		d.logger.Debug("discrete intent signal injected", "type", s.Type.String(), "count", count)
	}
	d.send(s)
}

func (d *Detector) send(s focus.IntentSignal) {
	d.out <- s
}

func euclid(x1, y1, x2, y2 float64) float64 {
	dx, dy := x1-x2, y1-y2
	return math.Sqrt(dx*dx + dy*dy)
}
