package handlers

import (
	"net/http"

	"csirt-registry/internal/database"
	"csirt-registry/internal/identity"
	"csirt-registry/internal/logging"
	"csirt-registry/internal/middleware"
	"csirt-registry/internal/models"
	"csirt-registry/internal/policy"

	"github.com/gin-gonic/gin"
)

// API — обработчики /api, зависят только от хранилища и провайдера.
type API struct {
	Store    database.Store
	Identity identity.Provider
}

func New(store database.Store, provider identity.Provider) *API {
	return &API{Store: store, Identity: provider}
}

// respondError пишет {"error": msg}; 5xx дополнительно логируются.
func respondError(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		logging.GetLogger(c.Request.Context()).WithError(err).Error("downstream error")
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func respondMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// caller достаёт то, что положили RequireAuth и Authorize.
func caller(c *gin.Context) (*models.AuthUser, *models.Profile, policy.Decision) {
	user, _ := middleware.CurrentUser(c)
	profile, _ := middleware.CurrentProfile(c)
	decision, _ := middleware.CurrentDecision(c)
	return user, profile, decision
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
