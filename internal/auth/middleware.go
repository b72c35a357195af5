package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/user/models"
)

// contextUserKey is the gin context key holding the authenticated user.
const contextUserKey = "auth_user"

// Middleware authenticates requests with an Authorization: Bearer header.
// WebSocket clients may pass the token as a "token" query parameter instead,
// since upgrade requests cannot always set headers.
func Middleware(verifier Verifier, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)

		user, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			appErr := apperrors.From(err, "authentication failed")
			log.Warn("Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.String("code", appErr.Code),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    apperrors.ErrCodeUnauthorized,
					"message": appErr.Message,
				},
			})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by Middleware.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}
