package domain

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Dispatcher fans events out to live connections. Delivery is best effort:
// offline targets are skipped and a failed push never stops its siblings.
type Dispatcher struct {
	registry *ConnectionRegistry
	rooms    *RoomMembership
	relay    Relay
	origin   string
	recorder Recorder
}

type DispatcherOption func(*Dispatcher)

// WithRelay publishes user-scoped events to the other instances. origin
// identifies this instance so its own envelopes are not delivered twice.
func WithRelay(relay Relay, origin string) DispatcherOption {
	return func(d *Dispatcher) {
		d.relay = relay
		d.origin = origin
	}
}

func WithDispatcherRecorder(recorder Recorder) DispatcherOption {
	return func(d *Dispatcher) {
		d.recorder = recorder
	}
}

func NewDispatcher(registry *ConnectionRegistry, rooms *RoomMembership, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		rooms:    rooms,
		recorder: NopRecorder{},
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Dispatcher) SendToUser(ctx context.Context, userID UserID, name string, payload any) {
	d.push(ctx, d.registry.Lookup(userID), Event{Name: name, Payload: payload})

	if d.relay == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		slog.ErrorContext(ctx, "error encoding relayed event", "event", name, "error", err)
		return
	}

	if err := d.relay.Publish(ctx, Envelope{
		Origin:  d.origin,
		Target:  userID,
		Event:   name,
		Payload: raw,
	}); err != nil {
		slog.ErrorContext(ctx, "error relaying event", "event", name, "user", userID, "error", err)
	}
}

func (d *Dispatcher) SendToRoom(ctx context.Context, roomID RoomID, name string, payload any) {
	d.push(ctx, d.rooms.Members(roomID), Event{Name: name, Payload: payload})
}

// Deliver hands a relayed envelope to the local connections of its target.
func (d *Dispatcher) Deliver(ctx context.Context, envelope Envelope) {
	if d.origin != "" && envelope.Origin == d.origin {
		return
	}

	d.push(ctx, d.registry.Lookup(envelope.Target), Event{Name: envelope.Event, Payload: envelope.Payload})
}

// SendTo pushes the event to the given connections only.
func (d *Dispatcher) SendTo(ctx context.Context, conns []Connection, name string, payload any) int {
	return d.push(ctx, conns, Event{Name: name, Payload: payload})
}

func (d *Dispatcher) push(ctx context.Context, conns []Connection, event Event) int {
	delivered := 0
	for _, c := range conns {
		if err := c.Send(ctx, event); err != nil {
			slog.DebugContext(ctx, "dropping event", "event", event.Name, "connection", c.ID(), "error", err)
			d.recorder.EventDropped(event.Name)
			continue
		}

		d.recorder.EventDelivered(event.Name)
		delivered++
	}

	return delivered
}
