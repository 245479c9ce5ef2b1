package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Matches handles GET /matches/:user_id — the public profiles of everyone
// the user has a mutual match with. Matches are permanent.
func (h *Handler) Matches(c *gin.Context) {
	userID, err := idParam(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	matches, err := h.connects.Matches(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
