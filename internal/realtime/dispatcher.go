package realtime

import (
	"context"
	"encoding/json"
	"log"

	"luxurystay/internal/metrics"
)

// Server -> client events.
const (
	EventReceiveMessage       = "receive_message"
	EventBookingStatusUpdated = "booking_status_updated"
	EventNewBooking           = "new_booking"
	EventTaskAssigned         = "task_assigned"
	EventNewInquiry           = "new_inquiry"
	EventJoined               = "joined"
	EventError                = "error"
)

// Envelope is the wire frame: {"event": ..., "data": ...}.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Fanout forwards frames to every instance. Publish reports false when the
// frame was not accepted and must be delivered locally instead.
type Fanout interface {
	Publish(channel, event string, frame []byte) bool
}

// Dispatcher delivers events best effort, at most once. Nothing is queued for
// offline users.
type Dispatcher struct {
	registry *Registry
	fanout   Fanout
}

func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// UseFanout must be called before the dispatcher is shared.
func (d *Dispatcher) UseFanout(f Fanout) {
	d.fanout = f
}

func (d *Dispatcher) Dispatch(ctx context.Context, channel, event string, payload any) {
	frame, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		log.Printf("dispatch_encode_failed channel=%s event=%s err=%v", channel, event, err)
		return
	}

	if d.fanout != nil && d.fanout.Publish(channel, event, frame) {
		return
	}
	d.Deliver(channel, event, frame)
}

// Deliver hands an encoded frame to the local connections of channel and
// returns how many accepted it.
func (d *Dispatcher) Deliver(channel, event string, frame []byte) int {
	conns := d.registry.ConnectionsFor(channel)
	if len(conns) == 0 {
		log.Printf("dispatch_no_listeners channel=%s event=%s", channel, event)
		return 0
	}

	delivered := 0
	for _, c := range conns {
		if c.Send(frame) {
			delivered++
			metrics.IncDispatch(event, metrics.OutcomeDelivered)
			continue
		}
		metrics.IncDispatch(event, metrics.OutcomeDropped)
		log.Printf("dispatch_dropped channel=%s event=%s conn=%s", channel, event, c.ID())
	}
	return delivered
}
