package db

import (
	"time"
)

// User table
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Name         string    `gorm:"size:128;not null"`
	Age          int       `gorm:"not null"`
	Gender       string    `gorm:"size:32;not null"`
	Interests    string    `gorm:"size:255"`
	Bio          string    `gorm:"type:text"`
	Location     string    `gorm:"size:128"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// PublicProfile is the outward projection of a User: everything except
// credential material.
type PublicProfile struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Interests string `json:"interests"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
}

// Public projects the user into its public view.
func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Age:       u.Age,
		Gender:    u.Gender,
		Interests: u.Interests,
		Bio:       u.Bio,
		Location:  u.Location,
	}
}

// Like is a directed, append-only expression of interest.
//
// Unique index: (user_id, target_id)
//   - A user may like a given target at most once; the constraint, not the
//     application pre-check, is the final arbiter under concurrency.
type Like struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_liker_target,priority:1"`
	TargetID  uint64    `gorm:"not null;uniqueIndex:idx_liker_target,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Match records mutual interest between two users, stored once per pair in
// canonical orientation: User1ID = min(a, b), User2ID = max(a, b).
//
// Unique index: (user1_id, user2_id)
//   - Two concurrent reciprocal likes cannot both insert a Match row;
//     whichever transaction commits first wins.
type Match struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	User1ID   uint64    `gorm:"not null;uniqueIndex:idx_match_pair,priority:1"`
	User2ID   uint64    `gorm:"not null;uniqueIndex:idx_match_pair,priority:2"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Message is a directed, immutable chat message.
//
// Index: (sender_id, receiver_id) for thread lookups in either direction.
type Message struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	SenderID   uint64    `gorm:"not null;index:idx_msg_pair,priority:1"`
	ReceiverID uint64    `gorm:"not null;index:idx_msg_pair,priority:2"`
	Content    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index"`
}
