package notification

import (
	"context"
	"net/http"
	"time"

	"luxurystay/internal/domain"
	"luxurystay/internal/middleware"
	"luxurystay/internal/pkg/response"
	"luxurystay/internal/realtime"

	"github.com/gin-gonic/gin"
)

type Notifier interface {
	Dispatch(ctx context.Context, channel, event string, payload any)
}

// TestEvent is the payload of a synthetic new_booking event.
type TestEvent struct {
	Test    bool      `json:"test"`
	Message string    `json:"message"`
	SentBy  string    `json:"sent_by"`
	SentAt  time.Time `json:"sent_at"`
}

type Handler struct {
	notifier Notifier
}

func NewHandler(notifier Notifier) *Handler {
	return &Handler{notifier: notifier}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/notifications")
	{
		g.POST("/test", middleware.AdminOnly(), h.SendTest)
	}
}

// SendTest pushes a new_booking event to every staff connection so admins can
// check the realtime path end to end.
func (h *Handler) SendTest(c *gin.Context) {
	var req struct {
		Message string `json:"message"`
	}
	// an empty body is fine
	_ = c.ShouldBindJSON(&req)
	if req.Message == "" {
		req.Message = "Test notification"
	}

	ev := TestEvent{
		Test:    true,
		Message: req.Message,
		SentBy:  middleware.CurrentPrincipal(c).UserID,
		SentAt:  time.Now().UTC(),
	}
	h.notifier.Dispatch(c.Request.Context(), domain.StaffChannel, realtime.EventNewBooking, ev)

	response.Success(c, http.StatusAccepted, gin.H{
		"channel": domain.StaffChannel,
		"event":   realtime.EventNewBooking,
	})
}
