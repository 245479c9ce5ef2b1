package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kindling-app/kindling-backend/internal/app"
	"github.com/kindling-app/kindling-backend/internal/cache"
	"github.com/kindling-app/kindling-backend/internal/config"
	"github.com/kindling-app/kindling-backend/internal/db"
	"github.com/kindling-app/kindling-backend/internal/handlers"
	"github.com/kindling-app/kindling-backend/internal/service/account"
	"github.com/kindling-app/kindling-backend/internal/service/chat"
	"github.com/kindling-app/kindling-backend/internal/service/connect"
)

// setupTestRouter wires a full router against an in-memory SQLite DB and a
// miniredis, isolated per test.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := &config.Config{RedisAddr: mr.Addr()}
	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	appCtx := app.New(dbase, redisCache, logger)
	h := handlers.NewHandler(
		cfg,
		logger,
		account.NewService(appCtx),
		connect.NewService(appCtx),
		chat.NewService(appCtx),
	)
	return h.SetupRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := map[string]any{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
	}
	return w, resp
}

func registerUser(t *testing.T, r *gin.Engine, username, gender string, age int) uint64 {
	t.Helper()
	w, resp := doJSON(t, r, "POST", "/register", map[string]any{
		"username": username,
		"password": "pw",
		"name":     username,
		"age":      age,
		"gender":   gender,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return uint64(resp["user_id"].(float64))
}

// TestFullScenario walks the register -> like -> match -> message flow
// end to end over HTTP.
func TestFullScenario(t *testing.T) {
	r := setupTestRouter(t)

	aliceID := registerUser(t, r, "alice", "F", 30)
	bobID := registerUser(t, r, "bob", "M", 28)
	assert.Equal(t, uint64(1), aliceID)
	assert.Equal(t, uint64(2), bobID)

	// alice likes bob: no match yet
	w, resp := doJSON(t, r, "POST", "/like", map[string]any{"user_id": aliceID, "target_id": bobID})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, false, resp["match"])

	// bob likes alice back: match
	w, resp = doJSON(t, r, "POST", "/like", map[string]any{"user_id": bobID, "target_id": aliceID})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["match"])

	// alice's matches contain bob's public profile
	w, resp = doJSON(t, r, "GET", "/matches/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	matches := resp["matches"].([]any)
	require.Len(t, matches, 1)
	bob := matches[0].(map[string]any)
	assert.Equal(t, "bob", bob["username"])
	_, hasHash := bob["PasswordHash"]
	assert.False(t, hasHash)

	// alice messages bob
	w, _ = doJSON(t, r, "POST", "/messages/1/2", map[string]any{"content": "hi"})
	require.Equal(t, http.StatusCreated, w.Code)

	// the thread holds the message, with sender and ISO-8601 timestamp
	w, resp = doJSON(t, r, "GET", "/messages/1/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	msgs := resp["messages"].([]any)
	require.Len(t, msgs, 1)
	msg := msgs[0].(map[string]any)
	assert.Equal(t, "hi", msg["content"])
	assert.Equal(t, float64(1), msg["sender_id"])
	_, err := time.Parse(time.RFC3339, msg["timestamp"].(string))
	assert.NoError(t, err)
}

func TestRegisterValidationAndConflict(t *testing.T) {
	r := setupTestRouter(t)

	// missing required fields
	w, resp := doJSON(t, r, "POST", "/register", map[string]any{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp["error"], "Missing fields")

	// age must be an integer
	w, _ = doJSON(t, r, "POST", "/register", map[string]any{
		"username": "alice", "password": "pw", "name": "Alice", "age": "thirty", "gender": "F",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	registerUser(t, r, "alice", "F", 30)
	w, resp = doJSON(t, r, "POST", "/register", map[string]any{
		"username": "alice", "password": "pw", "name": "Alice", "age": 30, "gender": "F",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username already exists", resp["error"])
}

func TestLoginStatusCodes(t *testing.T) {
	r := setupTestRouter(t)
	registerUser(t, r, "alice", "F", 30)

	w, resp := doJSON(t, r, "POST", "/login", map[string]any{"username": "alice", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["user_id"])

	w, _ = doJSON(t, r, "POST", "/login", map[string]any{"username": "alice", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, "POST", "/login", map[string]any{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLikeStatusCodes(t *testing.T) {
	r := setupTestRouter(t)
	registerUser(t, r, "alice", "F", 30)
	registerUser(t, r, "bob", "M", 28)

	// self-like
	w, _ := doJSON(t, r, "POST", "/like", map[string]any{"user_id": 1, "target_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// missing ids
	w, _ = doJSON(t, r, "POST", "/like", map[string]any{"user_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown user
	w, _ = doJSON(t, r, "POST", "/like", map[string]any{"user_id": 1, "target_id": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// duplicate like answers 200, not 201
	w, _ = doJSON(t, r, "POST", "/like", map[string]any{"user_id": 1, "target_id": 2})
	assert.Equal(t, http.StatusCreated, w.Code)
	w, resp := doJSON(t, r, "POST", "/like", map[string]any{"user_id": 1, "target_id": 2})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Already liked", resp["message"])
	assert.Equal(t, false, resp["match"])
}

func TestProfilesExcludesSelfAndUnknown404(t *testing.T) {
	r := setupTestRouter(t)
	registerUser(t, r, "alice", "F", 30)
	registerUser(t, r, "bob", "M", 28)

	w, resp := doJSON(t, r, "GET", "/profiles/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profiles := resp["profiles"].([]any)
	require.Len(t, profiles, 1)
	assert.Equal(t, "bob", profiles[0].(map[string]any)["username"])

	w, _ = doJSON(t, r, "GET", "/profiles/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessageStatusCodes(t *testing.T) {
	r := setupTestRouter(t)
	registerUser(t, r, "alice", "F", 30)
	registerUser(t, r, "bob", "M", 28)

	// empty content
	w, _ := doJSON(t, r, "POST", "/messages/1/2", map[string]any{"content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown participant
	w, _ = doJSON(t, r, "POST", "/messages/1/999", map[string]any{"content": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, r, "GET", "/messages/1/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWelcomeAndHealth(t *testing.T) {
	r := setupTestRouter(t)

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to the Dating App API.", w.Body.String())

	w, resp := doJSON(t, r, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", resp["status"])
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	r := setupTestRouter(t)

	req, _ := http.NewRequest("OPTIONS", "/like", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
