package booking

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"luxurystay/internal/domain"
	"luxurystay/internal/realtime"
	"luxurystay/internal/repository"
	"luxurystay/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	db       *gorm.DB
	svc      *Service
	notifier *testutil.RecordingNotifier
	rooms    *repository.RoomRepository
	tasks    *repository.TaskRepository
	guest    domain.Principal
	desk     domain.Principal
	room     *domain.Room
}

func newEnv(t *testing.T) *env {
	db := testutil.NewDB(t)
	e := &env{
		db:       db,
		notifier: &testutil.RecordingNotifier{},
		rooms:    repository.NewRoomRepository(db),
		tasks:    repository.NewTaskRepository(db),
	}
	e.svc = NewService(
		repository.NewBookingRepository(db),
		e.rooms,
		e.tasks,
		repository.NewUserRepository(db),
		e.notifier,
	)

	g := testutil.SeedUser(t, db, "guest", domain.RoleGuest)
	d := testutil.SeedUser(t, db, "desk", domain.RoleReceptionist)
	e.guest = domain.Principal{UserID: g.ID, Role: g.Role}
	e.desk = domain.Principal{UserID: d.ID, Role: d.Role}
	e.room = testutil.SeedRoom(t, db, "101", 150)
	return e
}

func (e *env) book(t *testing.T) *domain.Booking {
	t.Helper()
	in := domain.TruncateToDay(time.Now()).AddDate(0, 0, 7)
	b, err := e.svc.Create(context.Background(), e.guest, CreateBookingRequest{
		RoomID:       e.room.ID,
		CheckInDate:  Date{in},
		CheckOutDate: Date{in.AddDate(0, 0, 2)},
	})
	require.NoError(t, err)
	return b
}

func (e *env) roomStatus(t *testing.T) domain.RoomStatus {
	t.Helper()
	r, err := e.rooms.GetByID(context.Background(), e.room.ID)
	require.NoError(t, err)
	return r.Status
}

func TestScenario_StayLifecycle(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	b := e.book(t)
	assert.Equal(t, 300.0, b.TotalAmount)
	assert.Equal(t, []string{domain.StaffChannel}, e.notifier.Channels(realtime.EventNewBooking))
	e.notifier.Reset()

	_, err := e.svc.UpdateStatus(ctx, e.desk, b.ID, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, e.roomStatus(t))
	assert.Equal(t, []string{e.guest.UserID, domain.StaffChannel}, e.notifier.Channels(realtime.EventBookingStatusUpdated))
	e.notifier.Reset()

	_, err = e.svc.UpdateStatus(ctx, e.desk, b.ID, domain.BookingCheckedIn)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomOccupied, e.roomStatus(t))
	assert.Equal(t, []string{e.guest.UserID}, e.notifier.Channels(realtime.EventBookingStatusUpdated))
	e.notifier.Reset()

	out, err := e.svc.UpdateStatus(ctx, e.desk, b.ID, domain.BookingCheckedOut)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedOut, out.Status)
	assert.Equal(t, int64(4), out.Version)
	assert.Equal(t, domain.RoomCleaning, e.roomStatus(t))
	assert.Equal(t, []string{e.guest.UserID, domain.StaffChannel}, e.notifier.Channels(realtime.EventBookingStatusUpdated))

	tasks, err := e.tasks.List(ctx, domain.TaskPending)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, e.room.ID, tasks[0].RoomID)
	assert.Equal(t, domain.TaskCleaning, tasks[0].Type)

	// terminal: nothing moves any more
	e.notifier.Reset()
	_, err = e.svc.UpdateStatus(ctx, e.desk, b.ID, domain.BookingCancelled)
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, domain.BookingCheckedOut, te.Current)
	assert.Equal(t, domain.RoomCleaning, e.roomStatus(t))
	assert.Empty(t, e.notifier.Events())
}

func TestScenario_CancelledVersusCheckedInOnPending(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	b := e.book(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	actors := []domain.Principal{e.guest, e.desk}
	targets := []domain.BookingStatus{domain.BookingCancelled, domain.BookingCheckedIn}
	for i := range targets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.svc.UpdateStatus(ctx, actors[i], b.ID, targets[i])
		}(i)
	}
	wg.Wait()

	// Pending -> CheckedIn is never a valid edge, so the cancel wins.
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], domain.ErrInvalidTransition)

	got, err := e.svc.Get(ctx, e.desk, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	assert.Equal(t, domain.RoomAvailable, e.roomStatus(t))
}

func TestScenario_RacingTransitionsFromConfirmed(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	b := e.book(t)
	_, err := e.svc.UpdateStatus(ctx, e.desk, b.ID, domain.BookingConfirmed)
	require.NoError(t, err)

	targets := []domain.BookingStatus{domain.BookingCancelled, domain.BookingCheckedIn}
	errs := make([]error, len(targets))
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := range targets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = e.svc.UpdateStatus(ctx, e.desk, b.ID, targets[i])
		}(i)
	}
	close(start)
	wg.Wait()

	winners := 0
	var winner domain.BookingStatus
	for i, err := range errs {
		if err == nil {
			winners++
			winner = targets[i]
			continue
		}
		// the loser either saw the stale version or the already-moved status
		assert.True(t, errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrInvalidTransition), err)
	}
	require.Equal(t, 1, winners)

	got, err := e.svc.Get(ctx, e.desk, b.ID)
	require.NoError(t, err)
	assert.Equal(t, winner, got.Status)
}

func TestScenario_OverlappingBookingRejected(t *testing.T) {
	e := newEnv(t)
	e.book(t)

	in := domain.TruncateToDay(time.Now()).AddDate(0, 0, 8)
	_, err := e.svc.Create(context.Background(), e.guest, CreateBookingRequest{
		RoomID:       e.room.ID,
		CheckInDate:  Date{in},
		CheckOutDate: Date{in.AddDate(0, 0, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestHandler_StatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := newEnv(t)
	b := e.book(t)

	router := func(p domain.Principal) *gin.Engine {
		r := gin.New()
		api := r.Group("/api")
		api.Use(testutil.WithPrincipal(p))
		NewHandler(e.svc).RegisterRoutes(api)
		return r
	}
	path := "/api/bookings/" + b.ID + "/status"

	code, resp := testutil.Do(t, router(e.guest), http.MethodPut, path, UpdateStatusRequest{Status: domain.BookingConfirmed})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)

	code, resp = testutil.Do(t, router(e.desk), http.MethodPut, path, UpdateStatusRequest{Status: domain.BookingCheckedOut})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_TRANSITION", resp.Error.Code)
	assert.Equal(t, "Pending", resp.Error.Details["current"])
	assert.Equal(t, "CheckedOut", resp.Error.Details["requested"])

	code, _ = testutil.Do(t, router(e.desk), http.MethodPut, "/api/bookings/missing/status", UpdateStatusRequest{Status: domain.BookingConfirmed})
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = testutil.Do(t, router(e.desk), http.MethodPut, path, UpdateStatusRequest{Status: domain.BookingConfirmed})
	require.Equal(t, http.StatusOK, code)
	var body struct{ Booking domain.Booking }
	testutil.Decode(t, resp, &body)
	assert.Equal(t, domain.BookingConfirmed, body.Booking.Status)

	code, resp = testutil.Do(t, router(e.guest), http.MethodGet, "/api/bookings", nil)
	require.Equal(t, http.StatusOK, code)
	var list struct{ Bookings []domain.Booking }
	testutil.Decode(t, resp, &list)
	assert.Len(t, list.Bookings, 1)

	code, _ = testutil.Do(t, router(e.guest), http.MethodPost, "/api/bookings", map[string]any{
		"room_id": e.room.ID, "check_in_date": "not-a-date", "check_out_date": "2030-01-02",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = testutil.Do(t, router(e.desk), http.MethodDelete, "/api/bookings/"+b.ID, nil)
	assert.Equal(t, http.StatusForbidden, code)
}
