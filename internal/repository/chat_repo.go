package repository

import (
	"context"

	"luxurystay/internal/domain"

	"gorm.io/gorm"
)

// ChatRepository stores direct messages in the relational database.
type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	if msg.ID == "" {
		msg.ID = domain.NewID()
	}
	return translate(r.db.WithContext(ctx).Create(msg).Error)
}

// History returns every message exchanged between a and b, oldest first.
func (r *ChatRepository) History(ctx context.Context, a, b string) ([]domain.Message, error) {
	var out []domain.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("created_at ASC").
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flips unread messages from sender to reader and returns how many changed.
func (r *ChatRepository) MarkRead(ctx context.Context, reader, sender string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read = ?", sender, reader, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}

func (r *ChatRepository) CountUnread(ctx context.Context, reader string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("receiver_id = ? AND read = ?", reader, false).
		Count(&cnt).Error
	return cnt, err
}
