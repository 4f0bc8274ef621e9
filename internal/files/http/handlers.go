package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/codehive-ide/codehive-backend/internal/api/http"
)

type createReq struct {
	ProjectID string `json:"projectId"`
	FileName  string `json:"fileName"`
	Content   string `json:"content"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "code": "validation_error"})
		return
	}

	if err := h.svc.CreateFile(c.Request.Context(), req.ProjectID, req.FileName, req.Content); err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "file created successfully"})
}

func (h *Handler) get(c *gin.Context) {
	content, err := h.svc.GetFile(c.Request.Context(), c.Param("projectId"), c.Param("fileName"))
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.DeleteFile(c.Request.Context(), c.Param("projectId"), c.Param("fileName")); err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "file deleted successfully"})
}
