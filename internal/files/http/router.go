package http

import "github.com/gin-gonic/gin"

// Register attaches file routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("/:projectId/:fileName", h.get)
	rg.DELETE("/:projectId/:fileName", h.delete)
}
