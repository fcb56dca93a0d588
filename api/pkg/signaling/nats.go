package signaling

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog/log"
)

const (
	focusEventsStream  = "FOCUS_EVENTS"
	focusEventsSubject = "focus.events.*"
)

// Publisher is the subset of api/pkg/pubsub.Publisher the signaling bridge
// needs: fire-and-forget byte publication to a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload []byte) error
}

// NatsPublisher publishes focus events onto a JetStream stream for
// cross-process fan-out, mirroring api/pkg/pubsub/nats.go's connection and
// stream-creation pattern (minus the embedded-server option, out of scope
// for a library that only ever talks to an already-running NATS deployment).
type NatsPublisher struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	stream jetstream.Stream
}

// NewNatsPublisher connects to serverURL and ensures the focus-events stream
// exists.
func NewNatsPublisher(ctx context.Context, serverURL, token string) (*NatsPublisher, error) {
	opts := []nats.Option{}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}
	opts = append(opts,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats connection lost")
		}),
		nats.ReconnectHandler(func(*nats.Conn) {
			log.Info().Msg("nats reconnected")
		}),
	)

	nc, err := nats.Connect(serverURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	stream, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      focusEventsStream,
		Subjects:  []string{focusEventsSubject},
		Retention: jetstream.LimitsPolicy,
		MaxAge:    24 * time.Hour,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create focus events stream: %w", err)
	}

	log.Info().Str("url", serverURL).Str("stream", focusEventsStream).Msg("connected to nats for focus event fan-out")

	return &NatsPublisher{conn: nc, js: js, stream: stream}, nil
}

// Publish implements Publisher.
func (p *NatsPublisher) Publish(ctx context.Context, subject string, payload []byte) error {
	_, err := p.js.Publish(ctx, subject, payload)
	return err
}

// Close closes the underlying NATS connection without draining it first.
func (p *NatsPublisher) Close() {
	p.conn.Close()
}

// SubjectForSession returns the JetStream subject a session's focus events
// are published on.
func SubjectForSession(sessionID string) string {
	return "focus.events." + sessionID
}
