package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/codehive-ide/codehive-backend/internal/api/http"
	"github.com/codehive-ide/codehive-backend/internal/apperr"
	"github.com/codehive-ide/codehive-backend/internal/execution/service"
)

// Handler exposes the run-code endpoint.
type Handler struct {
	orch *service.Orchestrator
}

func New(orch *service.Orchestrator) *Handler {
	return &Handler{orch: orch}
}

// Register attaches the execution route to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.run)
}

type runReq struct {
	ProjectID string `json:"projectId"`
	FileName  string `json:"fileName"`
	Input     string `json:"input"`
}

func (h *Handler) run(c *gin.Context) {
	var req runReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "code": "validation_error"})
		return
	}

	result, err := h.orch.Run(c.Request.Context(), req.ProjectID, req.FileName, req.Input)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Code == apperr.CodeExecRuntime {
			// The program failed, not the system: diagnostics and any
			// partial output travel back together.
			c.JSON(http.StatusOK, gin.H{
				"output": result.Output,
				"error":  appErr.Message,
				"code":   appErr.Code,
			})
			return
		}
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"output": result.Output})
}
