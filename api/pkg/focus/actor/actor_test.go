package actor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus"
	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus/engine"
)

type recorder struct {
	changes chan focus.FocusChangeEvent
}

func (r *recorder) OnFocusChange(e focus.FocusChangeEvent) { r.changes <- e }

func newTestActor(t *testing.T) (*Actor, *recorder, context.CancelFunc) {
	t.Helper()
	bounds := focus.NewDisplayBounds(
		focus.Display{ID: "D1", Bounds: focus.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
		focus.Display{ID: "D2", Bounds: focus.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}},
	)
	rec := &recorder{changes: make(chan focus.FocusChangeEvent, 16)}
	eng, err := engine.New("sess-1", focus.DefaultConfig(), bounds, engine.WithChangeSink(rec))
	require.NoError(t, err)

	a := New(eng, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go a.Run(ctx)
	return a, rec, cancel
}

func TestActor_SubmitSerializesSignalsThroughEngine(t *testing.T) {
	a, rec, cancel := newTestActor(t)
	defer cancel()

	id := focus.ScreenId("D2")
	a.Submit(focus.IntentSignal{Type: focus.SignalClick, ScreenID: &id, TimestampMs: 1000})
	a.Submit(focus.IntentSignal{Type: focus.SignalClick, ScreenID: &id, TimestampMs: 1400})

	select {
	case evt := <-rec.changes:
		assert.Equal(t, focus.ScreenId("D2"), evt.ScreenID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for focus change")
	}
}

func TestActor_SnapshotReflectsProcessedSignals(t *testing.T) {
	a, _, cancel := newTestActor(t)
	defer cancel()

	id := focus.ScreenId("D2")
	a.Submit(focus.IntentSignal{Type: focus.SignalClick, ScreenID: &id, TimestampMs: 1000})
	a.Submit(focus.IntentSignal{Type: focus.SignalClick, ScreenID: &id, TimestampMs: 1400})

	require.Eventually(t, func() bool {
		return a.Snapshot().ActiveScreenID == "D2"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestActor_SubmitCommandAppliesManualOverride(t *testing.T) {
	a, _, cancel := newTestActor(t)
	defer cancel()

	a.SubmitCommand(focus.OperatorCommand{Action: focus.ActionManualSelect, ScreenID: "D2", TimestampMs: 100})

	require.Eventually(t, func() bool {
		snap := a.Snapshot()
		return snap.Mode == focus.ModeManual && snap.ActiveScreenID == "D2"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestActor_UpdateDisplaysIsAppliedInOrder(t *testing.T) {
	a, _, cancel := newTestActor(t)
	defer cancel()

	narrowed := focus.NewDisplayBounds(focus.Display{ID: "D3", Bounds: focus.Rect{X: 0, Y: 0, Width: 100, Height: 100}})
	a.UpdateDisplays(narrowed)

	id := focus.ScreenId("D1")
	a.Submit(focus.IntentSignal{Type: focus.SignalClick, ScreenID: &id, TimestampMs: 1000})
	a.Submit(focus.IntentSignal{Type: focus.SignalClick, ScreenID: &id, TimestampMs: 1400})

	// D1 no longer exists in bounds, so attribution falls through to the
	// point (0,0), which D3 contains; the clicks switch the active screen
	// from its initial D1 to D3. Had the clicks been processed before the
	// swap, they would have stayed on D1.
	time.Sleep(50 * time.Millisecond)
	snap := a.Snapshot()
	assert.NotEqual(t, focus.ScreenId("D1"), snap.ActiveScreenID)
}

func TestActor_RunStopsOnContextCancel(t *testing.T) {
	a, _, cancel := newTestActor(t)
	cancel()
	done := make(chan struct{})
	go func() {
		a.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("actor did not stop after context cancel")
	}
}
