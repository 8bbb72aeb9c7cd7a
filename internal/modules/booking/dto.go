package booking

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"luxurystay/internal/domain"
)

// Date accepts "2006-01-02" as well as RFC 3339 timestamps.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

type CreateBookingRequest struct {
	// UserID lets booking managers book on behalf of a guest. Empty means the caller.
	UserID          string                `json:"user_id"`
	RoomID          string                `json:"room_id" binding:"required"`
	CheckInDate     Date                  `json:"check_in_date"`
	CheckOutDate    Date                  `json:"check_out_date"`
	Guests          int                   `json:"guests"`
	Extras          []domain.BookingExtra `json:"extras" binding:"omitempty,dive"`
	SpecialRequests string                `json:"special_requests"`
	PaymentIntentID string                `json:"payment_intent_id"`
}

type UpdateStatusRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

// BookingEvent is the payload of new_booking and booking_status_updated.
type BookingEvent struct {
	Booking        *domain.Booking      `json:"booking"`
	PreviousStatus domain.BookingStatus `json:"previous_status,omitempty"`
}
