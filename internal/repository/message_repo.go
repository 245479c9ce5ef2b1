package repository

import (
	"context"

	"github.com/kindling-app/kindling-backend/internal/db"

	"gorm.io/gorm"
)

// MessageRepository provides data access methods for the Message model.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// Create persists a new message row.
func (r *MessageRepository) Create(ctx context.Context, msg *db.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// Thread returns every message between the two users, in either direction,
// ascending by timestamp with id as the tiebreak. Re-issuing the query gives
// a fresh snapshot; there is no streaming.
func (r *MessageRepository) Thread(ctx context.Context, a, b uint64) ([]db.Message, error) {
	var msgs []db.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			a, b, b, a).
		Order("created_at ASC, id ASC").
		Find(&msgs).Error
	return msgs, err
}
