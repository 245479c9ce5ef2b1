package repository

import (
	"context"

	"github.com/kindling-app/kindling-backend/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository provides data access methods for likes and the matches
// derived from them. The two are kept together because match derivation
// must happen in the same transaction as the like insert.
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new repository bound to the given DB connection.
func NewLikeRepository(database *gorm.DB) *LikeRepository {
	return &LikeRepository{db: database}
}

// RecordLike inserts a like from userID to targetID and derives the match
// state, all inside one transaction.
//
// Behavior:
//   - Insert uses ON CONFLICT DO NOTHING on (user_id, target_id); a duplicate
//     like is a no-op and reports created=false.
//   - When the like is new and the reciprocal like exists, a Match row is
//     inserted in canonical (min, max) orientation, again with ON CONFLICT
//     DO NOTHING so concurrent reciprocal likes cannot create two matches.
//   - matched reports whether this call created the match.
//
// Per unordered pair the states are: no interaction, one-sided like, matched.
// Matched is terminal; repeated likes from either side are no-ops.
//
// Example:
//
//	created, matched, err := repo.RecordLike(ctx, 1, 2)
func (r *LikeRepository) RecordLike(ctx context.Context, userID, targetID uint64) (created, matched bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := db.Like{UserID: userID, TargetID: targetID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_id"}},
			DoNothing: true,
		}).Create(&like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// pair already liked, nothing more to derive
			return nil
		}
		created = true

		var reciprocal int64
		if err := tx.Model(&db.Like{}).
			Where("user_id = ? AND target_id = ?", targetID, userID).
			Count(&reciprocal).Error; err != nil {
			return err
		}
		if reciprocal == 0 {
			return nil
		}

		lo, hi := userID, targetID
		if lo > hi {
			lo, hi = hi, lo
		}
		match := db.Match{User1ID: lo, User2ID: hi}
		mres := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
			DoNothing: true,
		}).Create(&match)
		if mres.Error != nil {
			return mres.Error
		}
		matched = mres.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, false, err
	}
	return created, matched, nil
}

// HasLiked checks whether userID has liked targetID (directed lookup).
func (r *LikeRepository) HasLiked(ctx context.Context, userID, targetID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.Like{}).
		Where("user_id = ? AND target_id = ?", userID, targetID).
		Count(&count).Error
	return count > 0, err
}
