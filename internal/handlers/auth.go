package handlers

import (
	"errors"
	"net/http"

	"personal_diary/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	msgTypeSuccess = "success"
	msgTypeError   = "error"

	tabLogin  = "login"
	tabSignup = "signup"
)

// loginPage is the data for the landing/login template.
type loginPage struct {
	Message     string
	MessageType string
	ActiveTab   string
}

func (h *Handler) renderLogin(c *gin.Context, p loginPage) {
	if p.ActiveTab == "" {
		p.ActiveTab = tabLogin
	}
	c.HTML(http.StatusOK, "login", p)
}

// home routes to the role-appropriate page: login for anonymous visitors,
// the user directory for admin, the entry listing for everyone else.
func (h *Handler) home(c *gin.Context) {
	ident := identityFrom(c)
	switch {
	case ident.IsAnonymous():
		h.renderLogin(c, loginPage{})
	case ident.IsAdmin():
		c.Redirect(http.StatusFound, "/admin")
	default:
		c.Redirect(http.StatusFound, "/entries")
	}
}

func (h *Handler) signUp(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := h.services.Authorization.SignUp(c.Request.Context(), username, password)
	if err != nil {
		msg := "could not create account"
		switch {
		case errors.Is(err, service.ErrMissingFields),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrUsernameTaken):
			msg = err.Error()
		default:
			h.log.Errorw("signup_failed", "err", err)
		}
		h.renderLogin(c, loginPage{Message: msg, MessageType: msgTypeError, ActiveTab: tabSignup})
		return
	}

	h.renderLogin(c, loginPage{
		Message:     "Account created! Please login.",
		MessageType: msgTypeSuccess,
		ActiveTab:   tabLogin,
	})
}

func (h *Handler) logIn(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.services.Authorization.Login(c.Request.Context(), username, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.log.Errorw("login_failed", "err", err)
		}
		h.renderLogin(c, loginPage{
			Message:     "Invalid username or password",
			MessageType: msgTypeError,
			ActiveTab:   tabLogin,
		})
		return
	}

	token, err := h.services.Sessions.Issue(user)
	if err != nil {
		h.log.Errorw("session_issue_failed", "err", err, "username", user.Username)
		h.renderLogin(c, loginPage{
			Message:     "Login failed, please try again",
			MessageType: msgTypeError,
			ActiveTab:   tabLogin,
		})
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logOut(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}
