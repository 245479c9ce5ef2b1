package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	svcErr "github.com/kindling-app/kindling-backend/internal/errors"
)

type LikeRequest struct {
	UserID   *uint64 `json:"user_id"`
	TargetID *uint64 `json:"target_id"`
}

// Like handles POST /like. A fresh like answers 201 with the match outcome;
// repeating an existing like is a no-op answered with 200.
func (h *Handler) Like(c *gin.Context) {
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == nil || req.TargetID == nil {
		h.respondError(c, svcErr.Validation("user_id and target_id required as integers"))
		return
	}

	created, matched, err := h.connects.Like(c.Request.Context(), *req.UserID, *req.TargetID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Already liked", "match": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Like recorded", "match": matched})
}
