// Package testutil provides shared helpers for package tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"luxurystay/internal/database"
	"luxurystay/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := database.Connect(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), database.Options{Silent: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedUser inserts a user with the given role and returns it.
func SeedUser(t testing.TB, db *gorm.DB, username string, role domain.UserRole) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           domain.NewID(),
		Username:     username,
		Email:        username + "@luxurystay.test",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// SeedRoom inserts an available room.
func SeedRoom(t testing.TB, db *gorm.DB, number string, price float64) *domain.Room {
	t.Helper()
	r := &domain.Room{
		ID:            domain.NewID(),
		RoomNumber:    number,
		Type:          domain.RoomDouble,
		PricePerNight: price,
		Status:        domain.RoomAvailable,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

// Event is one recorded dispatch.
type Event struct {
	Channel string
	Event   string
	Payload any
}

// RecordingNotifier captures dispatches instead of sending them.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *RecordingNotifier) Dispatch(_ context.Context, channel, event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, Event{Channel: channel, Event: event, Payload: payload})
}

func (n *RecordingNotifier) Events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.events...)
}

// Channels lists the channels that received event, in dispatch order.
func (n *RecordingNotifier) Channels(event string) []string {
	var out []string
	for _, e := range n.Events() {
		if e.Event == event {
			out = append(out, e.Channel)
		}
	}
	return out
}

func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}

// WithPrincipal fakes JWTAuth for handler tests.
func WithPrincipal(p domain.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", p.UserID)
		c.Set("role", string(p.Role))
		c.Next()
	}
}

// Envelope mirrors the response body.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

// Do runs a JSON request against h and decodes the envelope.
func Do(t testing.TB, h http.Handler, method, path string, body any) (int, Envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env Envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

// Decode unmarshals envelope data into v.
func Decode(t testing.TB, env Envelope, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}
