package http

import (
	"github.com/gin-gonic/gin"

	"github.com/codehive-ide/codehive-backend/internal/apperr"
)

// Error writes a classified error as the response: the HTTP status from
// the taxonomy, a machine-readable code and a human-readable message. No
// raw infrastructure error crosses this boundary.
func Error(c *gin.Context, err error) {
	code, ok := apperr.CodeOf(err)
	message := apperr.MessageOf(err)
	if !ok {
		code = apperr.CodeStorage
		message = "internal error"
	}
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"error": message,
		"code":  code,
	})
}
