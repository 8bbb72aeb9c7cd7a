package notification

import (
	"net/http"
	"testing"

	"luxurystay/internal/domain"
	"luxurystay/internal/realtime"
	"luxurystay/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(p domain.Principal, notifier Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(notifier).RegisterRoutes(r.Group("/api", testutil.WithPrincipal(p)))
	return r
}

func TestSendTest_Admin(t *testing.T) {
	notifier := &testutil.RecordingNotifier{}
	r := newRouter(domain.Principal{UserID: "admin-1", Role: domain.RoleAdmin}, notifier)

	status, env := testutil.Do(t, r, http.MethodPost, "/api/notifications/test", map[string]string{"message": "ping"})
	require.Equal(t, http.StatusAccepted, status)
	assert.True(t, env.Success)

	events := notifier.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.StaffChannel, events[0].Channel)
	assert.Equal(t, realtime.EventNewBooking, events[0].Event)
	ev := events[0].Payload.(TestEvent)
	assert.Equal(t, "ping", ev.Message)
	assert.Equal(t, "admin-1", ev.SentBy)
}

func TestSendTest_NonAdminForbidden(t *testing.T) {
	notifier := &testutil.RecordingNotifier{}
	r := newRouter(domain.Principal{UserID: "m-1", Role: domain.RoleManager}, notifier)

	status, env := testutil.Do(t, r, http.MethodPost, "/api/notifications/test", nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
	assert.Empty(t, notifier.Events())
}
