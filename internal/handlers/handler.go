package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kindling-app/kindling-backend/internal/config"
	svcErr "github.com/kindling-app/kindling-backend/internal/errors"
	"github.com/kindling-app/kindling-backend/internal/service/account"
	"github.com/kindling-app/kindling-backend/internal/service/chat"
	"github.com/kindling-app/kindling-backend/internal/service/connect"
)

type Handler struct {
	cfg      *config.Config
	logger   *slog.Logger
	accounts *account.Service
	connects *connect.Service
	chats    *chat.Service
}

func NewHandler(
	cfg *config.Config,
	logger *slog.Logger,
	accounts *account.Service,
	connects *connect.Service,
	chats *chat.Service,
) *Handler {
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		accounts: accounts,
		connects: connects,
		chats:    chats,
	}
}

// respondError maps a service error onto its status code and the common
// {"error": msg} body. Infra failures are logged here, nothing is fatal.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := svcErr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, svcErr.Validation(name + " must be a valid integer id")
	}
	return id, nil
}
