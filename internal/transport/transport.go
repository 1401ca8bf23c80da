package transport

import (
	"context"
	"encoding/json"
	"errors"
)

//go:generate mockgen -destination=mocks/mock_transport.go -package=mocks github.com/ajserber/roadwatch/internal/transport Client

// EventNewHazard is the single event name carried on the channel. The
// payload is a models.HazardPayload, inbound and outbound.
const EventNewHazard = "newHazard"

// Handler receives the raw payload of an inbound event.
type Handler func(data json.RawMessage)

// ErrNotConnected is returned by Emit when no connection is open.
var ErrNotConnected = errors.New("transport: not connected")

// Client is one persistent bidirectional connection to the notification
// channel. Inbound events are dispatched in the order they arrive from
// the wire. The client does not deduplicate, buffer across disconnects,
// or reconnect on its own; connection loss surfaces as silence, so the
// absence of events is inconclusive, not "no new hazards". Handlers must
// be registered before Connect.
type Client interface {
	Connect(ctx context.Context) error
	On(event string, h Handler)
	Emit(event string, payload any) error
	Close() error
}
