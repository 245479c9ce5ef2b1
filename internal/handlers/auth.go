package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	svcErr "github.com/kindling-app/kindling-backend/internal/errors"
	"github.com/kindling-app/kindling-backend/internal/service/account"
)

type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Interests string `json:"interests,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Location  string `json:"location,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /register.
// Field presence and age validation live in the account service so the
// error messages stay consistent with non-HTTP callers.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, svcErr.Validation("Invalid request body: "+err.Error()))
		return
	}

	userID, err := h.accounts.Register(c.Request.Context(), account.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Name:      req.Name,
		Age:       req.Age,
		Gender:    req.Gender,
		Interests: req.Interests,
		Bio:       req.Bio,
		Location:  req.Location,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user_id": userID,
	})
}

// Login handles POST /login. On success the bare user id is returned;
// there are no sessions or tokens.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, svcErr.Validation("Invalid request body: "+err.Error()))
		return
	}
	if req.Username == "" || req.Password == "" {
		h.respondError(c, svcErr.Validation("Username and password required"))
		return
	}

	userID, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user_id": userID,
	})
}
