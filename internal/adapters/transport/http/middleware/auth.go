package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lumenchat/auth-service/internal/adapters/transport/http/dto"
	appsvc "github.com/lumenchat/auth-service/internal/app/auth/service"
	"github.com/lumenchat/auth-service/internal/domain/auth/model"
)

const userContextKey = "authUser"

// RequireAuth is the session guard: it resolves the bearer token to a user
// and aborts with a uniform unauthenticated envelope otherwise. The concrete
// failure reason (expired, malformed, forged) is logged, never surfaced.
func RequireAuth(svc appsvc.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			reject(c)
			return
		}

		user, err := svc.Authenticate(c.Request.Context(), raw)
		if err != nil {
			log.Debug("authentication rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			reject(c)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func UserFromContext(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	// Legacy clients send the token in a bare header.
	return c.GetHeader("token")
}

func reject(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusOK, dto.Envelope{
		Success: false,
		Message: "Not authorized!",
	})
}
