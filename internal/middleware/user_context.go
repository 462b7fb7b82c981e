package middleware

import (
	"csirt-registry/internal/models"
	"csirt-registry/internal/policy"

	"github.com/gin-gonic/gin"
)

const (
	authUserKey = "AuthUser"
	profileKey  = "CurrentProfile"
	decisionKey = "PolicyDecision"
)

func setAuth(c *gin.Context, user *models.AuthUser, profile *models.Profile) {
	c.Set(authUserKey, user)
	c.Set(profileKey, profile)
}

func CurrentUser(c *gin.Context) (*models.AuthUser, bool) {
	v, ok := c.Get(authUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.AuthUser)
	return u, ok
}

func CurrentProfile(c *gin.Context) (*models.Profile, bool) {
	v, ok := c.Get(profileKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*models.Profile)
	return p, ok
}

// CurrentDecision — решение, принятое Authorize для этого запроса.
func CurrentDecision(c *gin.Context) (policy.Decision, bool) {
	v, ok := c.Get(decisionKey)
	if !ok {
		return policy.Decision{}, false
	}
	d, ok := v.(policy.Decision)
	return d, ok
}
