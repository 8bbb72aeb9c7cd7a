package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "Pending"
	BookingConfirmed  BookingStatus = "Confirmed"
	BookingCheckedIn  BookingStatus = "CheckedIn"
	BookingCheckedOut BookingStatus = "CheckedOut"
	BookingCancelled  BookingStatus = "Cancelled"
	BookingRejected   BookingStatus = "Rejected"
)

// bookingTransitions lists every permitted edge of the booking lifecycle.
// Statuses without outgoing edges are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingRejected, BookingCancelled},
	BookingConfirmed: {BookingCheckedIn, BookingCancelled},
	BookingCheckedIn: {BookingCheckedOut},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn,
		BookingCheckedOut, BookingCancelled, BookingRejected:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s.Valid() && len(bookingTransitions[s]) == 0
}

// CanTransitionTo reports whether next is a direct successor of s.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, candidate := range bookingTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// OccupiesRoom reports whether a booking in this status holds its room dates.
func (s BookingStatus) OccupiesRoom() bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingCheckedIn
}

type TransitionDecision int

const (
	TransitionAllowed TransitionDecision = iota
	TransitionForbidden
	TransitionInvalid
)

func (d TransitionDecision) String() string {
	switch d {
	case TransitionAllowed:
		return "allowed"
	case TransitionForbidden:
		return "forbidden"
	default:
		return "invalid"
	}
}

// DecideTransition evaluates (current, requested, role) against the booking
// lifecycle. Authorization is checked first: a caller that may not request the
// status gets TransitionForbidden even when the edge does not exist either.
//
// Booking managers may request any status. A guest may only cancel a booking
// they own.
func DecideTransition(current, requested BookingStatus, role UserRole, isOwner bool) TransitionDecision {
	switch {
	case role.CanManageBookings():
	case role == RoleGuest && isOwner && requested == BookingCancelled:
	default:
		return TransitionForbidden
	}

	if !current.CanTransitionTo(requested) {
		return TransitionInvalid
	}
	return TransitionAllowed
}

type BookingExtra struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"gte=0"`
}

type Booking struct {
	ID              string         `json:"id" gorm:"primaryKey;size:36"`
	UserID          string         `json:"user_id" gorm:"not null;index"`
	RoomID          string         `json:"room_id" gorm:"not null;index"`
	CheckInDate     time.Time      `json:"check_in_date" gorm:"not null"`
	CheckOutDate    time.Time      `json:"check_out_date" gorm:"not null"`
	TotalAmount     float64        `json:"total_amount" gorm:"not null"`
	PaymentIntentID string         `json:"payment_intent_id,omitempty"`
	Status          BookingStatus  `json:"status" gorm:"not null;default:'Pending';index"`
	Guests          int            `json:"guests" gorm:"not null;default:1"`
	Extras          []BookingExtra `json:"extras,omitempty" gorm:"serializer:json"`
	SpecialRequests string         `json:"special_requests,omitempty"`
	Version         int64          `json:"version" gorm:"not null;default:1"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// Nights is the number of nights between check-in and check-out.
func (b *Booking) Nights() int {
	return NightsBetween(b.CheckInDate, b.CheckOutDate)
}

// NightsBetween counts calendar nights between two dates in UTC.
func NightsBetween(checkIn, checkOut time.Time) int {
	in := TruncateToDay(checkIn)
	out := TruncateToDay(checkOut)
	return int(out.Sub(in).Hours() / 24)
}

// TruncateToDay drops the clock part of t, normalized to UTC.
func TruncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
