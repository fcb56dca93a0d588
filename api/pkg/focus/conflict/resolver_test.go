package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus"
)

func TestResolve(t *testing.T) {
	hover := focus.IntentSignal{Type: focus.SignalHover, TimestampMs: 10}
	low := focus.IntentSignal{Type: focus.SignalPointerMove, TimestampMs: 100}
	high := focus.IntentSignal{Type: focus.SignalClick, TimestampMs: 1}
	earlier := focus.IntentSignal{Type: focus.SignalScroll, TimestampMs: 100}
	later := focus.IntentSignal{Type: focus.SignalScroll, TimestampMs: 200}
	tripleA := focus.IntentSignal{Type: focus.SignalScroll, TimestampMs: 100, X: 1}
	tripleB := focus.IntentSignal{Type: focus.SignalScroll, TimestampMs: 100, X: 2}

	tests := []struct {
		name       string
		signals    []focus.IntentSignal
		wantOK     bool
		wantWinner focus.IntentSignal
	}{
		{
			name:    "empty",
			signals: nil,
			wantOK:  false,
		},
		{
			name:       "single signal",
			signals:    []focus.IntentSignal{hover},
			wantOK:     true,
			wantWinner: hover,
		},
		{
			name:       "higher priority wins regardless of timestamp",
			signals:    []focus.IntentSignal{low, high},
			wantOK:     true,
			wantWinner: high,
		},
		{
			// Same type => same priority and same base confidence, so the
			// later timestamp is the only remaining tie-breaker.
			name:       "tie broken by later timestamp",
			signals:    []focus.IntentSignal{earlier, later},
			wantOK:     true,
			wantWinner: later,
		},
		{
			name:       "stable on equal priority and timestamp",
			signals:    []focus.IntentSignal{tripleA, tripleB},
			wantOK:     true,
			wantWinner: tripleA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, ok := Resolve(tt.signals)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantWinner, winner)
			}
		})
	}
}
