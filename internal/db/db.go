package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kindling-app/kindling-backend/internal/config"
)

// NewDB initializes the database connection using DSN from config.
// A sqlite:// prefix selects the SQLite driver; anything else is MySQL.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(cfg.DBDSN, "sqlite://") {
		dialector = sqlite.Open(strings.TrimPrefix(cfg.DBDSN, "sqlite://"))
	} else {
		dialector = mysql.Open(cfg.DBDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true, // surface duplicate-key as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// AutoMigrate ensures schema is in sync with models.
	if err := db.AutoMigrate(&User{}, &Like{}, &Match{}, &Message{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
