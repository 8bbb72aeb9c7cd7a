package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"luxurystay/internal/domain"
	"luxurystay/internal/metrics"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
	sendBuffer = 256
)

// Frame is an inbound client message.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// FrameHandler processes one inbound frame. It runs on the read goroutine.
type FrameHandler func(ctx context.Context, c *Client, f Frame)

// Client is one websocket connection owned by an authenticated principal.
type Client struct {
	id        string
	principal domain.Principal
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn, p domain.Principal) *Client {
	return &Client{
		id:        domain.NewID(),
		principal: p,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		done:      make(chan struct{}),
	}
}

func (c *Client) ID() string { return c.id }

func (c *Client) Principal() domain.Principal { return c.principal }

// Send queues frame without blocking. A full buffer or closed client drops it.
func (c *Client) Send(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// Emit encodes and queues a single event for this client only.
func (c *Client) Emit(event string, data any) bool {
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		log.Printf("ws_encode_failed conn=%s event=%s err=%v", c.id, event, err)
		return false
	}
	return c.Send(frame)
}

func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Run pumps frames until the peer disconnects or ctx is cancelled.
func (c *Client) Run(ctx context.Context, handle FrameHandler) {
	metrics.ConnectionOpened()
	defer metrics.ConnectionClosed()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		c.Close()
	}()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writePump()
	}()

	c.readPump(ctx, handle)
	c.Close()
	<-writerDone
}

func (c *Client) readPump(ctx context.Context, handle FrameHandler) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws_read_error conn=%s user_id=%s err=%v", c.id, c.principal.UserID, err)
			}
			return
		}

		var f Frame
		if err := json.Unmarshal(msg, &f); err != nil || f.Event == "" {
			c.Emit(EventError, ErrorPayload{Code: "BAD_FRAME", Message: "frame must be {\"event\": string, \"data\": any}"})
			continue
		}
		handle(ctx, c, f)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

// ErrorPayload is the data of an "error" event.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
