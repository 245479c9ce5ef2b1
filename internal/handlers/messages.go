package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kindling-app/kindling-backend/internal/db"
	svcErr "github.com/kindling-app/kindling-backend/internal/errors"
)

type SendMessageRequest struct {
	Content string `json:"content"`
}

// MessageView is the wire shape of a message; timestamps are ISO-8601 UTC.
type MessageView struct {
	ID         uint64 `json:"id"`
	SenderID   uint64 `json:"sender_id"`
	ReceiverID uint64 `json:"receiver_id"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
}

func newMessageView(m db.Message) MessageView {
	return MessageView{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Timestamp:  m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// SendMessage handles POST /messages/:user_id/:target_id.
func (h *Handler) SendMessage(c *gin.Context) {
	senderID, err := idParam(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	receiverID, err := idParam(c, "target_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, svcErr.Validation("Content required"))
		return
	}

	if _, err := h.chats.Send(c.Request.Context(), senderID, receiverID, req.Content); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message sent"})
}

// Thread handles GET /messages/:user_id/:target_id — the full bidirectional
// conversation, oldest message first.
func (h *Handler) Thread(c *gin.Context) {
	userID, err := idParam(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	targetID, err := idParam(c, "target_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	msgs, err := h.chats.Thread(c.Request.Context(), userID, targetID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, newMessageView(m))
	}

	c.JSON(http.StatusOK, gin.H{"messages": views})
}
