package room

import "luxurystay/internal/domain"

type CreateRoomRequest struct {
	RoomNumber    string          `json:"room_number" binding:"required"`
	Type          domain.RoomType `json:"type" binding:"required"`
	PricePerNight float64         `json:"price_per_night" binding:"required,gt=0"`
	Description   string          `json:"description"`
	Amenities     []string        `json:"amenities"`
	Images        []string        `json:"images"`
}

// UpdateRoomRequest is a partial update; nil fields are left as they are.
type UpdateRoomRequest struct {
	RoomNumber    *string            `json:"room_number"`
	Type          *domain.RoomType   `json:"type"`
	PricePerNight *float64           `json:"price_per_night"`
	Status        *domain.RoomStatus `json:"status"`
	Description   *string            `json:"description"`
	Amenities     []string           `json:"amenities"`
	Images        []string           `json:"images"`
}

type UpdateStatusRequest struct {
	Status domain.RoomStatus `json:"status" binding:"required"`
}
