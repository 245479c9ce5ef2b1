package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires every route onto a gin engine.
// Cross-origin requests are allowed from any origin.
func (h *Handler) SetupRouter() *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the Dating App API.")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/profiles/:user_id", h.Profiles)
	r.POST("/like", h.Like)
	r.GET("/matches/:user_id", h.Matches)
	r.GET("/messages/:user_id/:target_id", h.Thread)
	r.POST("/messages/:user_id/:target_id", h.SendMessage)

	return r
}
