// Package hostsim provides a synthetic cursor provider for running the
// focus pipeline without a real desktop-shell host (explicitly out of
// scope per spec.md §1). It stands in for the D-Bus RemoteDesktop cursor
// feed api/pkg/desktop/cursor_state.go exposes in the teacher monorepo.
package hostsim

import (
	"math/rand"
	"sync"

	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus"
)

// Provider is a goroutine-safe, mutable synthetic cursor position, mirroring
// api/pkg/desktop/cursor_state.go's CursorState shape (mutex-guarded struct
// with Update/Get accessors) repurposed to drive a demo instead of
// compositing screenshots.
type Provider struct {
	mu      sync.RWMutex
	x, y    float64
	display *focus.ScreenId
	rng     *rand.Rand
}

// NewProvider constructs a Provider at the given starting position. seed
// makes the random walk reproducible for tests and demos.
func NewProvider(startX, startY float64, seed int64) *Provider {
	return &Provider{x: startX, y: startY, rng: rand.New(rand.NewSource(seed))}
}

// Sample implements intent.CursorProvider.
func (p *Provider) Sample() (x, y float64, hostDisplayID *focus.ScreenId) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.x, p.y, p.display
}

// Set moves the cursor to an exact position, used for scripted demo moves
// and operator-driven jumps between displays.
func (p *Provider) Set(x, y float64, display *focus.ScreenId) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.x, p.y, p.display = x, y, display
}

// RandomWalk nudges the cursor by up to maxStepPx in a random direction.
// Intended to be called once per tick from a demo driver loop.
func (p *Provider) RandomWalk(maxStepPx float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.x += (p.rng.Float64()*2 - 1) * maxStepPx
	p.y += (p.rng.Float64()*2 - 1) * maxStepPx
}
