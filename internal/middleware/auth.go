package middleware

import (
	"errors"
	"net/http"
	"strings"

	"csirt-registry/internal/database"
	"csirt-registry/internal/identity"
	"csirt-registry/internal/logging"
	"csirt-registry/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const bearerPrefix = "Bearer "

// BearerToken достаёт токен из Authorization: Bearer <token>.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}

// RequireAuth проверяет bearer токен у провайдера и загружает профиль.
// Каждый запрос проверяется заново, результат не кэшируется.
func RequireAuth(provider identity.Provider, store database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
			return
		}

		ctx := c.Request.Context()
		user, err := provider.GetUser(ctx, token)
		if err != nil {
			if !errors.Is(err, identity.ErrInvalidToken) {
				logging.GetLogger(ctx).WithError(err).Warn("token verification failed")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		profile, err := store.GetProfile(ctx, user.ID)
		if err != nil {
			if !errors.Is(err, database.ErrNotFound) {
				logging.GetLogger(ctx).WithError(err).WithField("user_id", user.ID).Warn("profile lookup failed")
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "profile not found or not accessible"})
			return
		}

		setAuth(c, user, profile)
		c.Request = c.Request.WithContext(logging.WithFields(ctx, logrus.Fields{
			"user_id": user.ID,
			"role":    string(profile.Role),
		}))
		c.Next()
	}
}

// Authorize применяет таблицу policy.Rules к текущему профилю.
// Должен стоять после RequireAuth.
func Authorize(op policy.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := CurrentProfile(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": policy.ErrForbidden.Error()})
			return
		}

		decision, err := policy.Evaluate(op, profile)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}

		c.Set(decisionKey, decision)
		c.Next()
	}
}
