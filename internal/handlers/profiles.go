package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Profiles handles GET /profiles/:user_id — every candidate except the
// browsing user, in id order. No ranking.
func (h *Handler) Profiles(c *gin.Context) {
	userID, err := idParam(c, "user_id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	profiles, err := h.accounts.Profiles(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}
