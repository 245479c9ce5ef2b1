package repository

import (
	"context"

	"github.com/kindling-app/kindling-backend/internal/db"

	"gorm.io/gorm"
)

// MatchRepository provides read access to derived Match rows.
// Matches are only ever created by LikeRepository.RecordLike.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// MatchIDsFor returns the id of the other participant for every match the
// user appears in, ordered by match id.
func (r *MatchRepository) MatchIDsFor(ctx context.Context, userID uint64) ([]uint64, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("id ASC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(matches))
	for _, m := range matches {
		if m.User1ID == userID {
			ids = append(ids, m.User2ID)
		} else {
			ids = append(ids, m.User1ID)
		}
	}
	return ids, nil
}

// ExistsForPair reports whether a match covers the unordered pair {a, b}.
func (r *MatchRepository) ExistsForPair(ctx context.Context, a, b uint64) (bool, error) {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&db.Match{}).
		Where("user1_id = ? AND user2_id = ?", lo, hi).
		Count(&count).Error
	return count > 0, err
}
