package hostsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus"
	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus/intent"
)

func TestProvider_SampleReturnsInitialPosition(t *testing.T) {
	p := NewProvider(100, 200, 1)
	x, y, display := p.Sample()
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 200.0, y)
	assert.Nil(t, display)
}

func TestProvider_SetOverridesPosition(t *testing.T) {
	p := NewProvider(0, 0, 1)
	id := focus.ScreenId("D2")
	p.Set(500, 600, &id)

	x, y, display := p.Sample()
	assert.Equal(t, 500.0, x)
	assert.Equal(t, 600.0, y)
	require.NotNil(t, display)
	assert.Equal(t, focus.ScreenId("D2"), *display)
}

func TestProvider_RandomWalkStaysWithinBounds(t *testing.T) {
	p := NewProvider(0, 0, 42)
	for i := 0; i < 50; i++ {
		p.RandomWalk(5)
	}
	x, y, _ := p.Sample()
	assert.InDelta(t, 0, x, 250) // 50 steps * max 5px, generous bound
	assert.InDelta(t, 0, y, 250)
}

func TestProvider_SatisfiesCursorProviderSignature(t *testing.T) {
	p := NewProvider(1, 2, 1)
	var _ intent.CursorProvider = p.Sample
}
