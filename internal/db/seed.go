package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedDemoData resets the database and populates it with demo users, likes,
// derived matches, and a few conversations.
//
// Behavior:
//  1. Clears existing data in all four tables.
//  2. Creates 20 users (10 male, 10 female) with hashed passwords.
//  3. Generates random likes (~70% of candidate pairs), every 3rd reciprocated
//     so matches exist out of the box.
//  4. Seeds a short message thread for each match.
//
// Compatible with both MySQL and SQLite (AUTO_INCREMENT reset skipped for SQLite).
func SeedDemoData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// --- Fresh start ---
	for _, table := range []string{"messages", "matches", "likes", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	// Reset auto-increment sequences
	switch db.Dialector.Name() {
	case "mysql":
		for _, table := range []string{"messages", "matches", "likes", "users"} {
			db.Exec("ALTER TABLE " + table + " AUTO_INCREMENT = 1")
		}
	case "sqlite":
		db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('messages','matches','likes','users')")
	}

	log.Println("Cleared existing data")

	// --- Seed Users (10 male, 10 female) ---
	locations := []string{"London", "Manchester", "Bristol", "Leeds", "Glasgow"}
	interests := []string{"hiking, cooking", "films, travel", "running, coffee", "music, art", "climbing, books"}

	for i := 1; i <= 20; i++ {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		gender := "male"
		if i > 10 {
			gender = "female"
		}

		user := User{
			Username:     fmt.Sprintf("user%d", i),
			PasswordHash: string(hash),
			Name:         fmt.Sprintf("Demo User %d", i),
			Age:          20 + r.Intn(20),
			Gender:       gender,
			Interests:    interests[r.Intn(len(interests))],
			Bio:          fmt.Sprintf("Hi, I'm demo user %d.", i),
			Location:     locations[r.Intn(len(locations))],
		}

		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}
	}
	log.Println("Seeded 20 users.")

	// --- Seed Likes (every 3rd reciprocated so matches exist) ---
	counter := 0
	for userID := uint64(1); userID <= 20; userID++ {
		for j := 0; j < 6; j++ {
			targetID := uint64(r.Intn(20) + 1)
			if userID == targetID {
				continue
			}
			if r.Intn(100) >= 70 {
				continue
			}

			if err := seedLike(db, userID, targetID); err != nil {
				return err
			}

			if counter%3 == 0 {
				if err := seedLike(db, targetID, userID); err != nil {
					return err
				}
			}
			counter++
		}
	}

	// --- Derive Matches from reciprocal likes ---
	var likes []Like
	if err := db.Find(&likes).Error; err != nil {
		return fmt.Errorf("failed to load likes: %w", err)
	}
	seen := map[[2]uint64]bool{}
	for _, l := range likes {
		lo, hi := l.UserID, l.TargetID
		if lo > hi {
			lo, hi = hi, lo
		}
		if seen[[2]uint64{lo, hi}] {
			continue
		}
		var reciprocal int64
		db.Model(&Like{}).Where("user_id = ? AND target_id = ?", l.TargetID, l.UserID).Count(&reciprocal)
		if reciprocal == 0 {
			continue
		}
		seen[[2]uint64{lo, hi}] = true

		match := Match{User1ID: lo, User2ID: hi}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
			DoNothing: true,
		}).Create(&match).Error; err != nil {
			return fmt.Errorf("failed to seed match: %w", err)
		}

		// --- Seed a short thread per match ---
		msgs := []Message{
			{SenderID: lo, ReceiverID: hi, Content: "Hey, we matched!"},
			{SenderID: hi, ReceiverID: lo, Content: "Hi! Nice to meet you."},
		}
		if err := db.Create(&msgs).Error; err != nil {
			return fmt.Errorf("failed to seed messages: %w", err)
		}
	}

	log.Printf("Seeded %d matches with starter conversations.", len(seen))
	return nil
}

func seedLike(db *gorm.DB, userID, targetID uint64) error {
	like := Like{UserID: userID, TargetID: targetID}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_id"}},
		DoNothing: true,
	}).Create(&like).Error
	if err != nil {
		return fmt.Errorf("failed to seed like: %w", err)
	}
	return nil
}
