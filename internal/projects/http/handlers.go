package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/codehive-ide/codehive-backend/internal/api/http"
	"github.com/codehive-ide/codehive-backend/internal/auth"
)

type createReq struct {
	Name          string `json:"name"`
	IdentityToken string `json:"identityToken"`
	Email         string `json:"email"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "code": "validation_error"})
		return
	}

	// A verified identity from the middleware outranks body fields.
	if id, ok := auth.FromContext(c); ok {
		req.IdentityToken = id.Subject
		if id.Email != "" {
			req.Email = id.Email
		}
	}

	p, err := h.svc.CreateProject(c.Request.Context(), req.Name, req.IdentityToken, req.Email)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"projectId": p.ProjectID,
		"name":      p.Name,
		"userId":    p.UserID,
	})
}

func (h *Handler) list(c *gin.Context) {
	identityToken := c.Query("identityToken")
	if id, ok := auth.FromContext(c); ok {
		identityToken = id.Subject
	}

	items, err := h.svc.ListProjects(c.Request.Context(), identityToken)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) delete(c *gin.Context) {
	projectID := c.Param("projectId")

	if err := h.svc.DeleteProject(c.Request.Context(), projectID); err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted successfully"})
}
