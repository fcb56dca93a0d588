package attribute

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus"
)

func threeDisplays() focus.DisplayBounds {
	return focus.NewDisplayBounds(
		focus.Display{ID: "D1", Bounds: focus.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, DPIScale: 1},
		focus.Display{ID: "D2", Bounds: focus.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}, DPIScale: 1},
		focus.Display{ID: "D3", Bounds: focus.Rect{X: 4480, Y: 0, Width: 1920, Height: 1080}, DPIScale: 1},
	)
}

func ptr(s focus.ScreenId) *focus.ScreenId { return &s }

func TestAttribute(t *testing.T) {
	tieBreakBounds := focus.NewDisplayBounds(
		focus.Display{ID: "A", Bounds: focus.Rect{X: 0, Y: 0, Width: 100, Height: 100}},
		focus.Display{ID: "B", Bounds: focus.Rect{X: 200, Y: 0, Width: 100, Height: 100}},
	)

	tests := []struct {
		name   string
		bounds focus.DisplayBounds
		signal focus.IntentSignal
		wantID focus.ScreenId
		wantOK bool
	}{
		{
			name:   "empty bounds",
			bounds: focus.DisplayBounds{},
			signal: focus.IntentSignal{Type: focus.SignalClick, X: 10, Y: 10},
			wantOK: false,
		},
		{
			name:   "explicit screen id wins",
			bounds: threeDisplays(),
			signal: focus.IntentSignal{Type: focus.SignalClick, ScreenID: ptr("D3"), X: 10, Y: 10},
			wantID: "D3",
			wantOK: true,
		},
		{
			name:   "explicit screen id unknown falls through to point-in-rect",
			bounds: threeDisplays(),
			signal: focus.IntentSignal{Type: focus.SignalClick, ScreenID: ptr("D99"), X: 10, Y: 10},
			wantID: "D1",
			wantOK: true,
		},
		{
			name:   "window focus uses window display id",
			bounds: threeDisplays(),
			signal: focus.IntentSignal{Type: focus.SignalWindowFocus, WindowDisplayID: ptr("D2"), X: 10, Y: 10},
			wantID: "D2",
			wantOK: true,
		},
		{
			name:   "non window-focus signal ignores window display id",
			bounds: threeDisplays(),
			signal: focus.IntentSignal{Type: focus.SignalClick, WindowDisplayID: ptr("D2"), X: 10, Y: 10},
			wantID: "D1",
			wantOK: true,
		},
		{
			name:   "point in rect",
			bounds: threeDisplays(),
			signal: focus.IntentSignal{Type: focus.SignalClick, X: 2000, Y: 500},
			wantID: "D2",
			wantOK: true,
		},
		{
			name:   "half-open boundary belongs to the next display",
			bounds: threeDisplays(),
			signal: focus.IntentSignal{Type: focus.SignalClick, X: 1920, Y: 500}, // D1's x+width
			wantID: "D2",
			wantOK: true,
		},
		{
			name:   "proximity fallback when no rect contains the point",
			bounds: threeDisplays(),
			signal: focus.IntentSignal{Type: focus.SignalClick, X: -50, Y: 500}, // left of D1's origin
			wantID: "D1",
			wantOK: true,
		},
		{
			// Two displays equidistant from a point above the gap between
			// them; the first in iteration order wins.
			name:   "proximity tie broken by bounds iteration order",
			bounds: tieBreakBounds,
			signal: focus.IntentSignal{Type: focus.SignalClick, X: 150, Y: -10},
			wantID: "A",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Attribute(tt.bounds, tt.signal)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}
