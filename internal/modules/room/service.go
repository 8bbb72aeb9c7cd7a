package room

import (
	"context"
	"fmt"
	"strings"

	"luxurystay/internal/domain"
	"luxurystay/internal/repository"
)

type Service struct {
	rooms RoomRepository
}

func NewService(rooms RoomRepository) *Service {
	return &Service{rooms: rooms}
}

func (s *Service) Create(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	room := &domain.Room{
		ID:            domain.NewID(),
		RoomNumber:    strings.TrimSpace(req.RoomNumber),
		Type:          req.Type,
		PricePerNight: req.PricePerNight,
		Status:        domain.RoomAvailable,
		Description:   req.Description,
		Amenities:     req.Amenities,
		Images:        req.Images,
	}
	if err := validateRoom(room); err != nil {
		return nil, err
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status domain.RoomStatus, roomType domain.RoomType) ([]domain.Room, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown room status %q", domain.ErrValidation, status)
	}
	if roomType != "" && !roomType.Valid() {
		return nil, fmt.Errorf("%w: unknown room type %q", domain.ErrValidation, roomType)
	}
	return s.rooms.List(ctx, repository.RoomFilter{Status: status, Type: roomType})
}

func (s *Service) Update(ctx context.Context, id string, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		room.RoomNumber = strings.TrimSpace(*req.RoomNumber)
	}
	if req.Type != nil {
		room.Type = *req.Type
	}
	if req.PricePerNight != nil {
		room.PricePerNight = *req.PricePerNight
	}
	if req.Status != nil {
		room.Status = *req.Status
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Amenities != nil {
		room.Amenities = req.Amenities
	}
	if req.Images != nil {
		room.Images = req.Images
	}

	if err := validateRoom(room); err != nil {
		return nil, err
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) (*domain.Room, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown room status %q", domain.ErrValidation, status)
	}
	if err := s.rooms.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.rooms.Delete(ctx, id)
}

func validateRoom(r *domain.Room) error {
	switch {
	case r.RoomNumber == "":
		return fmt.Errorf("%w: room_number is required", domain.ErrValidation)
	case !r.Type.Valid():
		return fmt.Errorf("%w: unknown room type %q", domain.ErrValidation, r.Type)
	case !r.Status.Valid():
		return fmt.Errorf("%w: unknown room status %q", domain.ErrValidation, r.Status)
	case r.PricePerNight <= 0:
		return fmt.Errorf("%w: price_per_night must be positive", domain.ErrValidation)
	}
	return nil
}
