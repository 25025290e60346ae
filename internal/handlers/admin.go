package handlers

import (
	"errors"
	"net/http"

	"personal_diary/internal/models"
	"personal_diary/internal/service"

	"github.com/gin-gonic/gin"
)

type adminPage struct {
	Username string
	Users    []models.UserInfo
}

func (h *Handler) adminHome(c *gin.Context) {
	ident := identityFrom(c)

	users, err := h.services.AdminDirectory.ListUsers(c.Request.Context())
	if err != nil {
		h.log.Errorw("admin_list_users_failed", "err", err)
	}
	c.HTML(http.StatusOK, "admin", adminPage{
		Username: ident.Username,
		Users:    users,
	})
}

// impersonate swaps the session over to the target user. The new token has
// the admin claim cleared; getting back requires a fresh admin login.
func (h *Handler) impersonate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	target, err := h.services.AdminDirectory.Impersonate(c.Request.Context(), id)
	if err != nil {
		// Unknown target: silently back to the directory.
		if !errors.Is(err, service.ErrNotFound) {
			h.log.Errorw("impersonate_failed", "err", err, "target_id", id)
		}
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	token, err := h.services.Sessions.Impersonated(target)
	if err != nil {
		h.log.Errorw("impersonate_token_failed", "err", err, "target_id", id)
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/")
}
