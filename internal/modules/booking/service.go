package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"luxurystay/internal/domain"
	"luxurystay/internal/metrics"
	"luxurystay/internal/realtime"
	"luxurystay/internal/repository"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomRepository
	tasks    TaskRepository
	users    UserRepository
	notifier Notifier
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	tasks TaskRepository,
	users UserRepository,
	notifier Notifier,
) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		tasks:    tasks,
		users:    users,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, actor domain.Principal, req CreateBookingRequest) (*domain.Booking, error) {
	ownerID := actor.UserID
	if req.UserID != "" && req.UserID != actor.UserID {
		if !actor.Role.CanManageBookings() {
			return nil, fmt.Errorf("%w: only front desk staff may book for another guest", domain.ErrForbidden)
		}
		ownerID = req.UserID
	}
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	if req.CheckInDate.IsZero() || req.CheckOutDate.IsZero() {
		return nil, fmt.Errorf("%w: check_in_date and check_out_date are required", domain.ErrValidation)
	}
	checkIn := domain.TruncateToDay(req.CheckInDate.Time)
	checkOut := domain.TruncateToDay(req.CheckOutDate.Time)
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDates
	}
	if checkIn.Before(domain.TruncateToDay(s.now())) {
		return nil, ErrPastCheckIn
	}

	guests := req.Guests
	if guests == 0 {
		guests = 1
	}
	if guests < 1 {
		return nil, ErrInvalidGuests
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	busy, err := s.bookings.HasOverlap(ctx, room.ID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, ErrRoomBooked
	}

	b := &domain.Booking{
		ID:              domain.NewID(),
		UserID:          ownerID,
		RoomID:          room.ID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		TotalAmount:     quote(room.PricePerNight, domain.NightsBetween(checkIn, checkOut), req.Extras),
		PaymentIntentID: req.PaymentIntentID,
		Status:          domain.BookingPending,
		Guests:          guests,
		Extras:          req.Extras,
		SpecialRequests: req.SpecialRequests,
		Version:         1,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	log.Printf("booking_created booking_id=%s user_id=%s room_id=%s by=%s", b.ID, b.UserID, b.RoomID, actor.UserID)

	s.notifier.Dispatch(ctx, domain.StaffChannel, realtime.EventNewBooking, BookingEvent{Booking: b})
	return b, nil
}

// quote is nights * price plus every extra, rounded to cents.
func quote(pricePerNight float64, nights int, extras []domain.BookingExtra) float64 {
	total := pricePerNight * float64(nights)
	for _, e := range extras {
		total += e.Price
	}
	return math.Round(total*100) / 100
}

// List returns the caller's own bookings, or every booking for staff.
func (s *Service) List(ctx context.Context, actor domain.Principal, status domain.BookingStatus) ([]domain.Booking, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", domain.ErrValidation, status)
	}

	f := repository.BookingFilter{Status: status}
	if !actor.Role.IsStaff() {
		f.UserID = actor.UserID
	}
	return s.bookings.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, actor domain.Principal, id string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != actor.UserID && !actor.Role.IsStaff() {
		return nil, domain.ErrForbidden
	}
	return b, nil
}

// UpdateStatus drives the booking lifecycle. Authorization is decided before
// the edge check, the write is guarded by the booking version, and room and
// notification side effects run only after the write persisted.
func (s *Service) UpdateStatus(
	ctx context.Context,
	actor domain.Principal,
	id string,
	requested domain.BookingStatus,
) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	decision := domain.DecideTransition(current.Status, requested, actor.Role, current.UserID == actor.UserID)
	if decision == domain.TransitionForbidden {
		return nil, domain.ErrForbidden
	}
	if !requested.Valid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", domain.ErrValidation, requested)
	}
	if decision == domain.TransitionInvalid {
		return nil, &domain.TransitionError{Current: current.Status, Requested: requested}
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, current.Version, requested, s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: booking was modified concurrently", domain.ErrConflict)
		}
		return nil, err
	}

	metrics.IncBookingTransition(string(current.Status), string(requested))
	log.Printf("booking_status_updated booking_id=%s from=%s to=%s by=%s role=%s",
		id, current.Status, requested, actor.UserID, actor.Role)

	roomErr := s.applyRoomEffects(ctx, updated)
	s.notifyStatus(ctx, updated, current.Status)
	if roomErr != nil {
		return nil, fmt.Errorf("booking %s is %s but room update failed: %v", id, requested, roomErr)
	}
	return updated, nil
}

func (s *Service) applyRoomEffects(ctx context.Context, b *domain.Booking) error {
	switch b.Status {
	case domain.BookingCheckedIn:
		return s.rooms.UpdateStatus(ctx, b.RoomID, domain.RoomOccupied)

	case domain.BookingCheckedOut:
		if err := s.rooms.UpdateStatus(ctx, b.RoomID, domain.RoomCleaning); err != nil {
			return err
		}
		task := &domain.Task{
			ID:          domain.NewID(),
			RoomID:      b.RoomID,
			Description: "Turnover cleaning after check-out of booking " + b.ID,
			Type:        domain.TaskCleaning,
			Priority:    domain.PriorityHigh,
			Status:      domain.TaskPending,
		}
		if err := s.tasks.Create(ctx, task); err != nil {
			// the room is already flagged for cleaning, staff can open the task by hand
			log.Printf("cleaning_task_create_failed booking_id=%s room_id=%s err=%v", b.ID, b.RoomID, err)
		}
	}
	// Confirmed, Cancelled and Rejected leave the room as it is.
	return nil
}

func (s *Service) notifyStatus(ctx context.Context, b *domain.Booking, previous domain.BookingStatus) {
	payload := BookingEvent{Booking: b, PreviousStatus: previous}

	s.notifier.Dispatch(ctx, b.UserID, realtime.EventBookingStatusUpdated, payload)
	switch b.Status {
	case domain.BookingConfirmed, domain.BookingCheckedOut:
		s.notifier.Dispatch(ctx, domain.StaffChannel, realtime.EventBookingStatusUpdated, payload)
	}
}

func (s *Service) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if actor.Role != domain.RoleManager && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("booking_deleted booking_id=%s by=%s", id, actor.UserID)
	return nil
}
