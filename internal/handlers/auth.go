package handlers

import (
	"errors"
	"net/http"
	"strings"

	"csirt-registry/internal/database"
	"csirt-registry/internal/identity"
	"csirt-registry/internal/logging"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessAccessToken  = "access_token"
	sessRefreshToken = "refresh_token"
)

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) Login(c *gin.Context) {
	var form loginForm
	if !bindJSON(c, &form) {
		return
	}
	form.Email = strings.TrimSpace(form.Email)
	if form.Email == "" || form.Password == "" {
		respondMessage(c, http.StatusBadRequest, "email and password are required")
		return
	}

	ctx := c.Request.Context()
	sess, err := a.Identity.SignIn(ctx, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			respondMessage(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	profile, err := a.Store.GetProfile(ctx, sess.User.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondMessage(c, http.StatusForbidden, "profile not found or not accessible")
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	cookie := sessions.Default(c)
	cookie.Set(sessAccessToken, sess.AccessToken)
	cookie.Set(sessRefreshToken, sess.RefreshToken)
	if err := cookie.Save(); err != nil {
		logging.GetLogger(ctx).WithError(err).Warn("failed to save session cookie")
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  sess.AccessToken,
		"refresh_token": sess.RefreshToken,
		"user":          sess.User,
		"profile":       profile,
	})
}

func (a *API) Session(c *gin.Context) {
	user, profile, _ := caller(c)
	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"profile": profile,
	})
}

type logoutForm struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout всегда отвечает success: отзыв токена у провайдера best-effort.
func (a *API) Logout(c *gin.Context) {
	var form logoutForm
	// тело необязательно
	_ = c.ShouldBindJSON(&form)

	cookie := sessions.Default(c)
	token := form.RefreshToken
	if token == "" {
		token, _ = cookie.Get(sessRefreshToken).(string)
	}

	ctx := c.Request.Context()
	if token != "" {
		if err := a.Identity.SignOut(ctx, token); err != nil {
			logging.GetLogger(ctx).WithError(err).Warn("sign out failed")
		}
	}

	cookie.Clear()
	if err := cookie.Save(); err != nil {
		logging.GetLogger(ctx).WithError(err).Warn("failed to clear session cookie")
	}

	success(c)
}
