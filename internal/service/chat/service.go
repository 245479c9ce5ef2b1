package chat

import (
	"context"

	"github.com/kindling-app/kindling-backend/internal/app"
	"github.com/kindling-app/kindling-backend/internal/db"
	svcErr "github.com/kindling-app/kindling-backend/internal/errors"
	"github.com/kindling-app/kindling-backend/internal/repository"
)

// Service implements direct messaging between users.
type Service struct {
	appCtx      *app.AppContext
	userRepo    *repository.UserRepository
	messageRepo *repository.MessageRepository
}

// NewService creates a new chat service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:      appCtx,
		userRepo:    repository.NewUserRepository(appCtx.DB),
		messageRepo: repository.NewMessageRepository(appCtx.DB),
	}
}

// Send persists a message from senderID to receiverID and returns its id.
//
// TODO: messaging is not gated on an existing match; product needs to decide
// whether unmatched users should be able to message each other.
func (s *Service) Send(ctx context.Context, senderID, receiverID uint64, content string) (uint64, error) {
	s.appCtx.Logger.Debug("Send called", "sender", senderID, "receiver", receiverID)

	for _, id := range []uint64{senderID, receiverID} {
		ok, err := s.userRepo.Exists(ctx, id)
		if err != nil {
			return 0, svcErr.Map(err)
		}
		if !ok {
			return 0, svcErr.NotFound("User not found")
		}
	}

	if content == "" {
		return 0, svcErr.Validation("Content required")
	}

	msg := db.Message{SenderID: senderID, ReceiverID: receiverID, Content: content}
	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		s.appCtx.Logger.Error("message insert failed", "err", err)
		return 0, svcErr.Map(err)
	}

	return msg.ID, nil
}

// Thread returns the full conversation between two users, both directions,
// oldest first. Both users must exist.
func (s *Service) Thread(ctx context.Context, userID, targetID uint64) ([]db.Message, error) {
	s.appCtx.Logger.Debug("Thread called", "user", userID, "target", targetID)

	for _, id := range []uint64{userID, targetID} {
		ok, err := s.userRepo.Exists(ctx, id)
		if err != nil {
			return nil, svcErr.Map(err)
		}
		if !ok {
			return nil, svcErr.NotFound("User not found")
		}
	}

	msgs, err := s.messageRepo.Thread(ctx, userID, targetID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return msgs, nil
}
