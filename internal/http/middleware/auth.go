package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zuckmantra/dashboard-Camila/internal/domain"
	"github.com/Zuckmantra/dashboard-Camila/internal/service"
)

const currentUserKey = "currentUser"

// Auth validates the Authorization header and attaches the resolved user.
type Auth struct {
	AuthService *service.AuthService
}

// RequireAuth ensures the request carries a valid bearer token. The user is
// re-resolved from storage on every request so revoked accounts and area
// changes take effect immediately.
func (m *Auth) RequireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		abortUnauthorized(c)
		return
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		abortUnauthorized(c)
		return
	}

	user, err := m.AuthService.Authenticate(c.Request.Context(), parts[1])
	if err != nil {
		abortUnauthorized(c)
		return
	}

	c.Set(currentUserKey, user)
	c.Next()
}

// RequireArea restricts an endpoint to users whose area is in the allow
// list, case-insensitively. Must run after RequireAuth.
func (m *Auth) RequireArea(areas ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(areas))
	for _, a := range areas {
		allowed[strings.ToUpper(a)] = true
	}

	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if !allowed[strings.ToUpper(user.Area)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":             "forbidden",
				"error_description": "No autorizado para ver el dashboard",
			})
			return
		}
		c.Next()
	}
}

// GetCurrentUser exposes the authenticated user to handlers.
func GetCurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := value.(domain.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":             "unauthorized",
		"error_description": "No se pudo validar las credenciales",
	})
}
