package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/codehive-ide/codehive-backend/internal/api/http"
	"github.com/codehive-ide/codehive-backend/internal/ai/service"
)

// Handler exposes the AI assistant endpoints. They are pass-through
// plumbing over the text-generation capability.
type Handler struct {
	svc *service.AIService
}

func New(svc *service.AIService) *Handler {
	return &Handler{svc: svc}
}

// Register attaches AI routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/auto-complete", h.autoComplete)
	rg.POST("/lint", h.lint)
	rg.POST("/generate-docs", h.generateDocs)
	rg.POST("/generate-snippet", h.generateSnippet)
}

type codeReq struct {
	Code string `json:"code"`
}

type snippetReq struct {
	Description string `json:"description"`
}

func (h *Handler) autoComplete(c *gin.Context) {
	var req codeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "code": "validation_error"})
		return
	}
	text, err := h.svc.AutoComplete(c.Request.Context(), req.Code)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": text})
}

func (h *Handler) lint(c *gin.Context) {
	var req codeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "code": "validation_error"})
		return
	}
	text, err := h.svc.Lint(c.Request.Context(), req.Code)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fixes": text})
}

func (h *Handler) generateDocs(c *gin.Context) {
	var req codeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "code": "validation_error"})
		return
	}
	text, err := h.svc.GenerateDocs(c.Request.Context(), req.Code)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"docs": text})
}

func (h *Handler) generateSnippet(c *gin.Context) {
	var req snippetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "code": "validation_error"})
		return
	}
	text, err := h.svc.GenerateSnippet(c.Request.Context(), req.Description)
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"snippet": text})
}
