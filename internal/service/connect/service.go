package connect

import (
	"context"

	"github.com/kindling-app/kindling-backend/internal/app"
	"github.com/kindling-app/kindling-backend/internal/db"
	svcErr "github.com/kindling-app/kindling-backend/internal/errors"
	"github.com/kindling-app/kindling-backend/internal/repository"
)

// Service implements the like/match flow: recording likes, deriving mutual
// matches inside the like transaction, and listing a user's matches.
type Service struct {
	appCtx    *app.AppContext
	userRepo  *repository.UserRepository
	likeRepo  *repository.LikeRepository
	matchRepo *repository.MatchRepository
}

// NewService creates a new connect service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		userRepo:  repository.NewUserRepository(appCtx.DB),
		likeRepo:  repository.NewLikeRepository(appCtx.DB),
		matchRepo: repository.NewMatchRepository(appCtx.DB),
	}
}

// Like records that userID liked targetID and reports the resulting state.
//
// Behavior:
//   - Self-likes are rejected before touching the store.
//   - Both users must exist.
//   - Insert and match derivation happen atomically in the repository; a
//     repeated like is a no-op with created=false.
//   - When a new match lands, both participants' cached match lists are
//     invalidated.
//
// Example:
//
//	created, matched, err := svc.Like(ctx, 1, 2)
func (s *Service) Like(ctx context.Context, userID, targetID uint64) (created, matched bool, err error) {
	s.appCtx.Logger.Debug("Like called", "user", userID, "target", targetID)

	if userID == targetID {
		return false, false, svcErr.Validation("Cannot like yourself")
	}

	for _, id := range []uint64{userID, targetID} {
		ok, err := s.userRepo.Exists(ctx, id)
		if err != nil {
			return false, false, svcErr.Map(err)
		}
		if !ok {
			return false, false, svcErr.NotFound("User not found")
		}
	}

	created, matched, err = s.likeRepo.RecordLike(ctx, userID, targetID)
	if err != nil {
		s.appCtx.Logger.Error("RecordLike failed", "err", err)
		return false, false, svcErr.Map(err)
	}

	if matched {
		_ = s.appCtx.RedisCache.InvalidateMatchIDs(ctx, userID)
		_ = s.appCtx.RedisCache.InvalidateMatchIDs(ctx, targetID)
		s.appCtx.Logger.Info("new match", "user", userID, "target", targetID)
	}

	return created, matched, nil
}

// Matches returns the public profiles of everyone the user is matched with.
//
// Cache-first strategy:
//  1. Attempts to read the matched-id list from Redis.
//  2. On miss, queries the DB and writes the list back with a TTL.
//  3. Profiles themselves are always fetched fresh.
func (s *Service) Matches(ctx context.Context, userID uint64) ([]db.PublicProfile, error) {
	s.appCtx.Logger.Debug("Matches called", "user", userID)

	ok, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if !ok {
		return nil, svcErr.NotFound("User not found")
	}

	ids, hit := s.appCtx.RedisCache.GetMatchIDs(ctx, userID)
	if !hit {
		ids, err = s.matchRepo.MatchIDsFor(ctx, userID)
		if err != nil {
			return nil, svcErr.Map(err)
		}
		_ = s.appCtx.RedisCache.SetMatchIDs(ctx, userID, ids)
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	profiles := make([]db.PublicProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Public())
	}
	return profiles, nil
}

// HasLiked is a directed lookup, exposed for other services and tests.
func (s *Service) HasLiked(ctx context.Context, userID, targetID uint64) (bool, error) {
	liked, err := s.likeRepo.HasLiked(ctx, userID, targetID)
	if err != nil {
		return false, svcErr.Map(err)
	}
	return liked, nil
}
