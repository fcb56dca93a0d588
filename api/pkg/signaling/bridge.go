package signaling

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sagarpandeyprofessional/focus-app/api/pkg/focus"
)

// Bridge implements engine.ChangeSink and engine.StateSink by fanning
// authoritative focus events out to WebSocket viewers (via Registry) and,
// if a Publisher is configured, onto NATS/JetStream for other processes.
// It deliberately has no dependency on the engine package: the interfaces
// it satisfies live there, but Bridge only needs to know focus's wire
// types, keeping the pure algorithmic core free of I/O imports.
//
// Logging uses the package-level zerolog logger, matching
// api/pkg/pubsub/nats.go's convention for this I/O-heavy layer (the pure
// engine core uses log/slog instead — see SPEC_FULL.md's AMBIENT STACK).
type Bridge struct {
	sessionID string
	registry  *Registry
	publisher Publisher
	snapshot  SnapshotSource
}

// SnapshotSource reads the authoritative, up-to-the-moment focus state —
// typically an *actor.Actor's Snapshot method — so a newly connected viewer
// can be caught up without waiting for the next focus change.
type SnapshotSource func() focus.FocusStateSnapshot

// NewBridge constructs a Bridge for one session. publisher may be nil, in
// which case events are only relayed to local WebSocket viewers. snapshot
// may be nil, in which case late joiners rely solely on the registry's
// cached last-broadcast payload (which is absent until the first focus
// event, per spec.md §4.7 this is the degraded path, not the common one).
func NewBridge(sessionID string, registry *Registry, publisher Publisher, snapshot SnapshotSource) *Bridge {
	return &Bridge{sessionID: sessionID, registry: registry, publisher: publisher, snapshot: snapshot}
}

// SetSnapshotSource wires the snapshot source after construction, for
// callers where the Bridge must exist before its actor does (the engine
// takes the Bridge as a sink at construction time, but the actor wraps the
// already-constructed engine) — see api/cmd/focusd/run.go.
func (b *Bridge) SetSnapshotSource(snapshot SnapshotSource) {
	b.snapshot = snapshot
}

// OnFocusChange implements engine.ChangeSink.
func (b *Bridge) OnFocusChange(evt focus.FocusChangeEvent) {
	payload, err := json.Marshal(wireMessage{Type: "focusChange", Change: &evt})
	if err != nil {
		log.Error().Err(err).Msg("marshal focus change")
		return
	}
	b.registry.Broadcast(b.sessionID, payload)

	if b.publisher == nil {
		return
	}
	changeOnly, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := b.publisher.Publish(context.Background(), SubjectForSession(b.sessionID), changeOnly); err != nil {
		log.Warn().Err(err).Msg("publish focus change to nats")
	}
}

// OnFocusState implements engine.StateSink.
func (b *Bridge) OnFocusState(snap focus.FocusStateSnapshot) {
	payload, err := json.Marshal(wireMessage{Type: "focusState", State: &snap})
	if err != nil {
		log.Error().Err(err).Msg("marshal focus state")
		return
	}
	b.registry.Broadcast(b.sessionID, payload)
}

type wireMessage struct {
	Type   string                    `json:"type"`
	Change *focus.FocusChangeEvent   `json:"change,omitempty"`
	State  *focus.FocusStateSnapshot `json:"state,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// CursorPresenceFunc is invoked for each inbound viewer cursor-presence
// message, typically wired to Registry.BroadcastCursorPresence.
type CursorPresenceFunc func(viewerID string, x, y float64)

// ServeWS upgrades r to a WebSocket, registers the connection as a viewer
// of sessionID, and relays inbound cursor-presence messages via onCursor
// until the connection closes. Mirrors
// api/pkg/desktop/ws_input.go's handleWSInput upgrade-then-loop shape.
func (b *Bridge) ServeWS(w http.ResponseWriter, r *http.Request, onCursor CursorPresenceFunc) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	viewer := b.registry.RegisterViewer(b.sessionID, conn)
	defer b.registry.UnregisterViewer(b.sessionID, viewer.ID)

	log.Info().Str("session_id", b.sessionID).Str("viewer_id", viewer.ID).Msg("viewer connected")

	// RegisterViewer above only replays the registry's cached last-broadcast
	// payload, which is nil until the first focus event and, even once set,
	// may be a focusChange delta rather than the authoritative snapshot. Pull
	// the engine's current state directly so every late joiner is caught up
	// correctly, per spec.md §4.7.
	if b.snapshot != nil {
		snap := b.snapshot()
		if err := viewer.send(wireMessage{Type: "focusState", State: &snap}); err != nil {
			log.Warn().Err(err).Str("session_id", b.sessionID).Str("viewer_id", viewer.ID).Msg("send initial snapshot to viewer")
		}
	}

	for {
		var in inboundMsg
		if err := conn.ReadJSON(&in); err != nil {
			break
		}
		if in.Type == "cursorPresence" && onCursor != nil {
			onCursor(viewer.ID, in.X, in.Y)
		}
	}

	log.Info().Str("session_id", b.sessionID).Str("viewer_id", viewer.ID).Msg("viewer disconnected")
}

type inboundMsg struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}
