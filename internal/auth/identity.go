package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ctxSubject = "identity_subject"
	ctxEmail   = "identity_email"
)

// Identity is a verified user identity: a stable opaque subject id plus
// the account email. By the time it reaches the services it is trusted.
type Identity struct {
	Subject string
	Email   string
}

// SetIdentity stores a verified identity in the request context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(ctxSubject, id.Subject)
	c.Set(ctxEmail, id.Email)
}

// FromContext returns the verified identity placed by the middleware,
// if any.
func FromContext(c *gin.Context) (Identity, bool) {
	subject := strings.TrimSpace(c.GetString(ctxSubject))
	if subject == "" {
		return Identity{}, false
	}
	return Identity{Subject: subject, Email: strings.TrimSpace(c.GetString(ctxEmail))}, true
}
