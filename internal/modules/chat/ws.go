package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"luxurystay/internal/domain"
	"luxurystay/internal/pkg/jwt"
	"luxurystay/internal/pkg/response"
	"luxurystay/internal/pkg/validator"
	"luxurystay/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	EventJoinRoom    = "join_room"
	EventSendMessage = "send_message"
)

type GatewayConfig struct {
	CheckOrigin func(r *http.Request) bool
	SendRate    float64
	SendBurst   int
}

// Gateway upgrades authenticated requests to websockets and routes their
// frames into the chat service and the connection registry.
type Gateway struct {
	tokens   *jwt.Service
	registry *realtime.Registry
	chat     *Service
	upgrader websocket.Upgrader
	limit    rate.Limit
	burst    int

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewGateway(tokens *jwt.Service, registry *realtime.Registry, chat *Service, cfg GatewayConfig) *Gateway {
	if cfg.SendRate <= 0 {
		cfg.SendRate = 5
	}
	if cfg.SendBurst < 1 {
		cfg.SendBurst = 10
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Gateway{
		tokens:   tokens,
		registry: registry,
		chat:     chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
		limit:  rate.Limit(cfg.SendRate),
		burst:  cfg.SendBurst,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (g *Gateway) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws", g.Serve)
}

// Serve authenticates the token query parameter, upgrades and blocks until
// the connection ends.
func (g *Gateway) Serve(c *gin.Context) {
	claims, err := g.tokens.ValidateToken(c.Query("token"))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}
	principal := domain.Principal{UserID: claims.UserID, Role: domain.UserRole(claims.Role)}
	if !principal.Role.Valid() {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	if !g.acquire() {
		response.Error(c, http.StatusServiceUnavailable, "SHUTTING_DOWN", "Server is shutting down")
		return
	}
	defer g.wg.Done()

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws_upgrade_failed user_id=%s err=%v", principal.UserID, err)
		return
	}

	client := realtime.NewClient(conn, principal)
	defer g.registry.Leave(client)

	log.Printf("ws_connected conn=%s user_id=%s role=%s", client.ID(), principal.UserID, principal.Role)
	limiter := rate.NewLimiter(g.limit, g.burst)
	client.Run(g.ctx, func(ctx context.Context, cl *realtime.Client, f realtime.Frame) {
		g.handleFrame(ctx, cl, limiter, f)
	})
	log.Printf("ws_disconnected conn=%s user_id=%s", client.ID(), principal.UserID)
}

// acquire registers a connection handler unless Close has started. Every
// successful call must be paired with g.wg.Done.
func (g *Gateway) acquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.wg.Add(1)
	return true
}

// Close ends every live connection and waits for their handlers to return.
// Later handshakes are refused with 503.
func (g *Gateway) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.cancel()
	g.wg.Wait()
}

func (g *Gateway) handleFrame(ctx context.Context, c *realtime.Client, limiter *rate.Limiter, f realtime.Frame) {
	switch f.Event {
	case EventJoinRoom:
		g.join(c, f.Data)
	case EventSendMessage:
		if !limiter.Allow() {
			emitError(c, "RATE_LIMITED", "Too many messages, slow down")
			return
		}
		g.send(ctx, c, f.Data)
	default:
		emitError(c, "UNKNOWN_EVENT", "Unknown event "+f.Event)
	}
}

func (g *Gateway) join(c *realtime.Client, data json.RawMessage) {
	var userID string
	if err := json.Unmarshal(data, &userID); err != nil || userID == "" {
		emitError(c, "VALIDATION_ERROR", "join_room expects a user id")
		return
	}
	p := c.Principal()
	if userID != p.UserID {
		emitError(c, "FORBIDDEN", "Cannot join another user's channel")
		return
	}

	channels := []string{p.UserID}
	if p.Role.IsStaff() {
		channels = append(channels, domain.StaffChannel)
	}
	for _, ch := range channels {
		g.registry.Join(ch, c)
	}
	c.Emit(realtime.EventJoined, gin.H{"user_id": p.UserID, "channels": channels})
}

func (g *Gateway) send(ctx context.Context, c *realtime.Client, data json.RawMessage) {
	var req SendMessagePayload
	if err := json.Unmarshal(data, &req); err != nil {
		emitError(c, "VALIDATION_ERROR", "send_message expects {sender, receiver, message}")
		return
	}
	if err := validator.Struct(req); err != nil {
		emitError(c, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Sender != c.Principal().UserID {
		emitError(c, "FORBIDDEN", "Sender does not match the authenticated user")
		return
	}

	if _, err := g.chat.Send(ctx, req.Sender, req.Receiver, req.Message); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		status, code := response.Classify(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			log.Printf("ws_send_failed conn=%s user_id=%s err=%v", c.ID(), req.Sender, err)
			msg = "Internal server error"
		}
		emitError(c, code, msg)
	}
}

func emitError(c *realtime.Client, code, message string) {
	c.Emit(realtime.EventError, realtime.ErrorPayload{Code: code, Message: message})
}
