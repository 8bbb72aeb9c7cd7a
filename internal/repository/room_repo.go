package repository

import (
	"context"

	"luxurystay/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type RoomFilter struct {
	Status domain.RoomStatus
	Type   domain.RoomType
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	if room.ID == "" {
		room.ID = domain.NewID()
	}
	if room.Status == "" {
		room.Status = domain.RoomAvailable
	}
	return translate(r.db.WithContext(ctx).Create(room).Error)
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r *RoomRepository) List(ctx context.Context, f RoomFilter) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Order("room_number ASC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	var rooms []domain.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// Update persists every mutable column of room.
func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	res := r.db.WithContext(ctx).Model(room).
		Select("room_number", "type", "price_per_night", "status", "description", "amenities", "images", "updated_at").
		Updates(room)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Room{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Room{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
