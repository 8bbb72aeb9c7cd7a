package booking

import (
	"fmt"

	"luxurystay/internal/domain"
)

var (
	ErrInvalidDates  = fmt.Errorf("%w: check_out_date must be after check_in_date", domain.ErrValidation)
	ErrPastCheckIn   = fmt.Errorf("%w: check_in_date is in the past", domain.ErrValidation)
	ErrInvalidGuests = fmt.Errorf("%w: guests must be at least 1", domain.ErrValidation)
	ErrRoomBooked    = fmt.Errorf("%w: room is already booked for these dates", domain.ErrConflict)
)
