package chat_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kindling-app/kindling-backend/internal/app"
	"github.com/kindling-app/kindling-backend/internal/cache"
	"github.com/kindling-app/kindling-backend/internal/config"
	"github.com/kindling-app/kindling-backend/internal/db"
	svcErr "github.com/kindling-app/kindling-backend/internal/errors"
	"github.com/kindling-app/kindling-backend/internal/service/chat"
)

// setupService spins up an in-memory SQLite DB with two seeded users, starts
// a miniredis, and wires everything into a chat Service instance.
func setupService(t *testing.T) (*chat.Service, *gorm.DB) {
	t.Helper()

	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, dbase.AutoMigrate(&db.User{}, &db.Like{}, &db.Match{}, &db.Message{}))

	users := []db.User{
		{ID: 1, Username: "user1", PasswordHash: "x", Name: "User 1", Age: 30, Gender: "F"},
		{ID: 2, Username: "user2", PasswordHash: "x", Name: "User 2", Age: 28, Gender: "M"},
	}
	require.NoError(t, dbase.Create(&users).Error)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := &config.Config{RedisAddr: mr.Addr()}
	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // discard logs in tests

	appCtx := app.New(dbase, redisCache, logger)
	return chat.NewService(appCtx), dbase
}

func kindOf(t *testing.T, err error) svcErr.Kind {
	t.Helper()
	var appErr *svcErr.Error
	require.True(t, errors.As(err, &appErr), "expected app error, got %v", err)
	return appErr.Kind
}

func TestSendAndThread(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	id, err := svc.Send(ctx, 1, 2, "hi")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	_, err = svc.Send(ctx, 2, 1, "hello back")
	require.NoError(t, err)

	thread, err := svc.Thread(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "hi", thread[0].Content)
	assert.Equal(t, uint64(1), thread[0].SenderID)
	assert.Equal(t, "hello back", thread[1].Content)

	// symmetric view
	reversed, err := svc.Thread(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, reversed, 2)
	assert.Equal(t, thread[0].ID, reversed[0].ID)
}

func TestSendEmptyContent(t *testing.T) {
	ctx := context.Background()
	svc, dbase := setupService(t)

	_, err := svc.Send(ctx, 1, 2, "")
	require.Error(t, err)
	assert.Equal(t, svcErr.KindValidation, kindOf(t, err))

	// store unchanged
	var count int64
	require.NoError(t, dbase.Model(&db.Message{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSendUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Send(ctx, 1, 999, "hi")
	require.Error(t, err)
	assert.Equal(t, svcErr.KindNotFound, kindOf(t, err))

	_, err = svc.Send(ctx, 999, 1, "hi")
	require.Error(t, err)
	assert.Equal(t, svcErr.KindNotFound, kindOf(t, err))
}

func TestThreadUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Thread(ctx, 1, 999)
	require.Error(t, err)
	assert.Equal(t, svcErr.KindNotFound, kindOf(t, err))
}
