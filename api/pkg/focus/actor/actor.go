// Package actor wraps an *engine.Engine in a single-goroutine mailbox so
// every caller — the intent detector, the signaling bridge, an operator
// console — can hand it signals and commands from their own goroutines
// without violating spec.md §5's single-threaded-cooperative requirement.
package actor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus"
	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus/engine"
)

// Actor serializes access to one *engine.Engine onto a single run loop
// goroutine, mirroring api/pkg/desktop/session.go's Server run-loop plus
// api/cmd/desktop-bridge/main.go's sync.WaitGroup-tracked shutdown.
type Actor struct {
	eng    *engine.Engine
	logger *slog.Logger

	signals  chan focus.IntentSignal
	commands chan focus.OperatorCommand
	displays chan focus.DisplayBounds
	queries  chan func(*engine.Engine)

	wg sync.WaitGroup
}

// New wraps eng in an Actor. logger defaults to slog.Default() if nil.
func New(eng *engine.Engine, logger *slog.Logger) *Actor {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Actor{
		eng:      eng,
		logger:   logger,
		signals:  make(chan focus.IntentSignal, 256),
		commands: make(chan focus.OperatorCommand, 16),
		displays: make(chan focus.DisplayBounds),
		queries:  make(chan func(*engine.Engine)),
	}
	a.wg.Add(1)
	return a
}

// Run drives the mailbox loop until ctx is canceled. Call it exactly once,
// on its own goroutine; it returns as soon as ctx.Done() fires, and signals
// or commands still queued in the mailbox are not processed. Callers that
// need a clean stop should cancel ctx and then Wait.
func (a *Actor) Run(ctx context.Context) {
	defer a.wg.Done()

	a.logger.Info("focus actor started")
	defer a.logger.Info("focus actor stopped")

	for {
		select {
		case <-ctx.Done():
			return
		case s := <-a.signals:
			a.eng.ProcessSignal(s)
		case c := <-a.commands:
			a.eng.HandleOperatorCommand(c)
		case b := <-a.displays:
			a.eng.UpdateDisplays(b)
		case q := <-a.queries:
			q(a.eng)
		}
	}
}

// Wait blocks until Run has returned.
func (a *Actor) Wait() {
	a.wg.Wait()
}

// Submit enqueues an IntentSignal for processing on the actor's goroutine.
// It does not block on the engine's work, only on mailbox capacity.
func (a *Actor) Submit(s focus.IntentSignal) {
	a.signals <- s
}

// SubmitCommand enqueues an OperatorCommand.
func (a *Actor) SubmitCommand(c focus.OperatorCommand) {
	a.commands <- c
}

// UpdateDisplays hands a display-bounds swap to the run loop and returns once
// the loop has taken it, so signals and commands submitted after it returns
// are processed against the new bounds.
func (a *Actor) UpdateDisplays(b focus.DisplayBounds) {
	a.displays <- b
}

// Snapshot synchronously reads engine state from the owning goroutine.
func (a *Actor) Snapshot() focus.FocusStateSnapshot {
	var snap focus.FocusStateSnapshot
	done := make(chan struct{})
	a.queries <- func(e *engine.Engine) {
		snap = e.Snapshot()
		close(done)
	}
	<-done
	return snap
}

// Metrics synchronously reads engine metrics from the owning goroutine.
func (a *Actor) Metrics() focus.Metrics {
	var m focus.Metrics
	done := make(chan struct{})
	a.queries <- func(e *engine.Engine) {
		m = e.Metrics()
		close(done)
	}
	<-done
	return m
}
