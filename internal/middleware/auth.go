package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"imacms/api/internal/models"
	"imacms/api/internal/security"
	"imacms/api/internal/service"
)

// CurrentUserKey is where Auth leaves the resolved user in the gin context.
const CurrentUserKey = "current_user"

// Authenticator resolves a bearer token to the user it belongs to.
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (models.User, error)
}

// Auth gates a route group behind a valid, non-expired session token. All
// failure modes answer 401; the message distinguishes them for the client.
func Auth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))

		user, err := auth.CurrentUser(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authMessage(err)})
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func authMessage(err error) string {
	switch {
	case errors.Is(err, security.ErrTokenExpired):
		return "Token expired"
	case errors.Is(err, security.ErrTokenInvalid):
		return "Invalid token"
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"
	default:
		return "Not authenticated"
	}
}
