package repository

import (
	"context"

	"github.com/kindling-app/kindling-backend/internal/db"

	"gorm.io/gorm"
)

// UserRepository provides data access methods for the User model.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Create inserts a new user row.
//
// Behavior:
//   - The unique index on username is the arbiter for duplicates; a second
//     insert with the same username surfaces gorm.ErrDuplicatedKey.
//
// Example:
//
//	repo.Create(ctx, &db.User{Username: "alice", ...})
func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID fetches a single user. Returns gorm.ErrRecordNotFound when absent.
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return user, err
}

// GetByUsername fetches a single user by its unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return user, err
}

// Exists reports whether a user row with the given id is present.
func (r *UserRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&db.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListExcluding returns every user except the given id, ordered by id for
// deterministic output. No ranking is applied.
func (r *UserRepository) ListExcluding(ctx context.Context, id uint64) ([]db.User, error) {
	var users []db.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", id).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

// GetByIDs fetches the users for a set of ids, ordered by id.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint64) ([]db.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []db.User
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&users).Error
	return users, err
}
