package handlers

import (
	"net/http"

	"personal_diary/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName  = "diary_session"
	contextKeyIdentity = "identity"
)

// resolveSession turns the session cookie into an explicit Identity stored in
// the request context. It always runs; anonymous requests get the zero
// identity rather than an error.
func (h *Handler) resolveSession(c *gin.Context) {
	token, _ := c.Cookie(sessionCookieName)
	c.Set(contextKeyIdentity, h.services.Sessions.Parse(token))
	c.Next()
}

// identityFrom returns the identity resolveSession placed in the context.
func identityFrom(c *gin.Context) service.Identity {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return service.Identity{}
	}
	ident, ok := v.(service.Identity)
	if !ok {
		return service.Identity{}
	}
	return ident
}

// requireUser admits any authenticated identity. Anonymous requests are sent
// back to the landing page, never an error response.
func (h *Handler) requireUser(c *gin.Context) {
	if identityFrom(c).IsAnonymous() {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Next()
}

// requireAdmin admits only the admin identity. Everyone else gets the same
// neutral redirect regular users get, so the route reveals nothing.
func (h *Handler) requireAdmin(c *gin.Context) {
	if !identityFrom(c).IsAdmin() {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Next()
}

// setSessionCookie installs the signed session token.
func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	maxAge := int(h.services.Sessions.TTL().Seconds())
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", false, true)
}

// clearSessionCookie drops the session in one step.
func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}
