package domain

import "time"

type RoomType string

const (
	RoomSingle    RoomType = "Single"
	RoomDouble    RoomType = "Double"
	RoomSuite     RoomType = "Suite"
	RoomDeluxe    RoomType = "Deluxe"
	RoomPenthouse RoomType = "Penthouse"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite, RoomDeluxe, RoomPenthouse:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomCleaning    RoomStatus = "Cleaning"
	RoomMaintenance RoomStatus = "Maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance:
		return true
	}
	return false
}

type Room struct {
	ID            string     `json:"id" gorm:"primaryKey;size:36"`
	RoomNumber    string     `json:"room_number" gorm:"uniqueIndex;not null"`
	Type          RoomType   `json:"type" gorm:"not null"`
	PricePerNight float64    `json:"price_per_night" gorm:"not null"`
	Status        RoomStatus `json:"status" gorm:"not null;default:'Available'"`
	Description   string     `json:"description,omitempty"`
	Amenities     []string   `json:"amenities,omitempty" gorm:"serializer:json"`
	Images        []string   `json:"images,omitempty" gorm:"serializer:json"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }
