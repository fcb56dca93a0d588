// Package signaling relays authoritative focus events to WebSocket viewers
// and republishes them onto NATS/JetStream for cross-process fan-out. It is
// the explicit Sink implementation the engine package only describes as an
// interface (engine.ChangeSink / engine.StateSink); the engine itself never
// imports gorilla/websocket or nats.go.
package signaling

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// viewerColors mirrors api/pkg/desktop/session_registry.go's presence
// palette, reused here for the supplemented multi-viewer cursor feature.
var viewerColors = []string{
	"#F24822", "#FF7262", "#FFCD29", "#14AE5C", "#0D99FF",
	"#9747FF", "#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4",
}

// Viewer is a single connected WebSocket client observing one session's
// focus stream.
type Viewer struct {
	ID    string
	Color string

	conn *websocket.Conn
	mu   sync.Mutex
}

func (v *Viewer) send(v2 any) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.conn.WriteJSON(v2)
}

// SessionViewers holds all viewers for one session, plus the last known
// state so a late joiner can be caught up immediately.
type SessionViewers struct {
	mu       sync.Mutex
	viewers  map[string]*Viewer
	colorIdx int

	lastState json.RawMessage
}

// Registry tracks viewer connections across every session, mirroring
// api/pkg/desktop/session_registry.go's SessionRegistry/SessionClients
// split (one registry, a lazily-created per-session bucket).
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*SessionViewers
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*SessionViewers)}
}

func (r *Registry) sessionFor(sessionID string) *SessionViewers {
	r.mu.Lock()
	defer r.mu.Unlock()
	sv, ok := r.sessions[sessionID]
	if !ok {
		sv = &SessionViewers{viewers: make(map[string]*Viewer)}
		r.sessions[sessionID] = sv
	}
	return sv
}

// RegisterViewer adds conn as a viewer of sessionID and, if a prior state
// snapshot exists, immediately replays it so the late joiner is caught up
// per spec.md §4.7.
func (r *Registry) RegisterViewer(sessionID string, conn *websocket.Conn) *Viewer {
	sv := r.sessionFor(sessionID)

	sv.mu.Lock()
	color := viewerColors[sv.colorIdx%len(viewerColors)]
	sv.colorIdx++
	v := &Viewer{ID: uuid.NewString(), Color: color, conn: conn}
	sv.viewers[v.ID] = v
	lastState := sv.lastState
	sv.mu.Unlock()

	if lastState != nil {
		_ = v.send(json.RawMessage(lastState))
	}
	return v
}

// UnregisterViewer removes a viewer from a session.
func (r *Registry) UnregisterViewer(sessionID string, viewerID string) {
	sv := r.sessionFor(sessionID)
	sv.mu.Lock()
	delete(sv.viewers, viewerID)
	sv.mu.Unlock()
}

// Broadcast sends payload (already JSON-marshaled) to every viewer of
// sessionID and remembers it as the late-joiner snapshot.
func (r *Registry) Broadcast(sessionID string, payload json.RawMessage) {
	sv := r.sessionFor(sessionID)

	sv.mu.Lock()
	sv.lastState = payload
	viewers := make([]*Viewer, 0, len(sv.viewers))
	for _, v := range sv.viewers {
		viewers = append(viewers, v)
	}
	sv.mu.Unlock()

	for _, v := range viewers {
		_ = v.send(payload)
	}
}

// BroadcastCursorPresence relays a non-authoritative viewer cursor position
// to every OTHER viewer of the session — the supplemented multi-viewer
// presence feature (see SPEC_FULL.md), adapted from
// session_registry.go's BroadcastCursorPosition.
func (r *Registry) BroadcastCursorPresence(sessionID, fromViewerID string, x, y float64) {
	sv := r.sessionFor(sessionID)

	sv.mu.Lock()
	var color string
	viewers := make([]*Viewer, 0, len(sv.viewers))
	for id, v := range sv.viewers {
		if id == fromViewerID {
			color = v.Color
			continue
		}
		viewers = append(viewers, v)
	}
	sv.mu.Unlock()

	msg := cursorPresenceMsg{Type: "cursorPresence", ViewerID: fromViewerID, Color: color, X: x, Y: y}
	for _, v := range viewers {
		_ = v.send(msg)
	}
}

type cursorPresenceMsg struct {
	Type     string  `json:"type"`
	ViewerID string  `json:"viewerId"`
	Color    string  `json:"color"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// ViewerCount returns the number of connected viewers for a session.
func (r *Registry) ViewerCount(sessionID string) int {
	sv := r.sessionFor(sessionID)
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return len(sv.viewers)
}
