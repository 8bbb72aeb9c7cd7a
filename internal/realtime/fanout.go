package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisChannel carries dispatched frames between instances.
const RedisChannel = "luxurystay:dispatch"

const fanoutQueueSize = 1024

// Publisher is the part of *redis.Client the fan-out publishes through.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type fanoutMessage struct {
	Channel string          `json:"channel"`
	Event   string          `json:"event"`
	Frame   json.RawMessage `json:"frame"`
}

// RedisFanout publishes frames to RedisChannel from a single goroutine so
// Dispatch never waits on the network. Every instance, this one included,
// receives them back through Listen and delivers locally.
type RedisFanout struct {
	pub   Publisher
	local *Dispatcher
	queue chan fanoutMessage
}

func NewRedisFanout(pub Publisher, local *Dispatcher) *RedisFanout {
	return &RedisFanout{
		pub:   pub,
		local: local,
		queue: make(chan fanoutMessage, fanoutQueueSize),
	}
}

func (f *RedisFanout) Publish(channel, event string, frame []byte) bool {
	select {
	case f.queue <- fanoutMessage{Channel: channel, Event: event, Frame: frame}:
		return true
	default:
		log.Printf("fanout_queue_full channel=%s event=%s", channel, event)
		return false
	}
}

// Run drains the publish queue until ctx is done. Frames that cannot be
// published are delivered to local connections only.
func (f *RedisFanout) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-f.queue:
			f.publish(ctx, msg)
		}
	}
}

func (f *RedisFanout) publish(ctx context.Context, msg fanoutMessage) {
	data, err := json.Marshal(msg)
	if err == nil {
		err = f.pub.Publish(ctx, RedisChannel, data).Err()
	}
	if err != nil {
		log.Printf("fanout_publish_failed channel=%s event=%s err=%v", msg.Channel, msg.Event, err)
		f.local.Deliver(msg.Channel, msg.Event, msg.Frame)
	}
}

// Subscriber is the part of *redis.Client the fan-out subscribes through.
type Subscriber interface {
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// Start waits until the subscription to RedisChannel is confirmed and only
// then starts the listener and the publish loop. Frames dispatched earlier
// stay queued, so this instance receives everything it publishes.
func (f *RedisFanout) Start(ctx context.Context, sub Subscriber) error {
	ps := sub.Subscribe(ctx, RedisChannel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return fmt.Errorf("subscribe %s: %w", RedisChannel, err)
	}
	log.Printf("fanout_listening channel=%s", RedisChannel)

	go func() {
		defer ps.Close()
		f.Listen(ctx, ps.Channel())
	}()
	go f.Run(ctx)
	return nil
}

// Listen delivers subscription messages until ctx is done or ch closes.
func (f *RedisFanout) Listen(ctx context.Context, ch <-chan *redis.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			f.HandlePayload(msg.Payload)
		}
	}
}

// HandlePayload delivers one message received from RedisChannel.
func (f *RedisFanout) HandlePayload(payload string) {
	var msg fanoutMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		log.Printf("fanout_bad_payload err=%v", err)
		return
	}
	f.local.Deliver(msg.Channel, msg.Event, msg.Frame)
}
