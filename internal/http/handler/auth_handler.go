package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zuckmantra/dashboard-Camila/internal/service"
)

const refreshCookieName = "refresh_token"

// AuthHandler exposes the session lifecycle endpoints.
type AuthHandler struct {
	Auth *service.AuthService
}

// NewAuthHandler creates the handler set.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// Login validates credentials, returns the access token and sets the
// refresh-token cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Correo     string `json:"correo"`
		Contrasena string `json:"contrasena"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": "Invalid payload."})
		return
	}

	pair, user, err := h.Auth.Login(c.Request.Context(), req.Correo, req.Contrasena)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, pair.RefreshToken, int(h.Auth.RefreshTTL().Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"token_type":    "bearer",
		"user":          user.Summary(),
		"refresh_token": pair.RefreshToken,
	})
}

// Refresh mints a new access token from a refresh token found in the cookie,
// the Authorization header, or the request body, in that order. The refresh
// cookie itself is left untouched.
func (h *AuthHandler) Refresh(c *gin.Context) {
	tokenString := h.extractRefreshToken(c)

	access, user, err := h.Auth.Refresh(c.Request.Context(), tokenString)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": access,
		"token_type":   "bearer",
		"user":         user.Summary(),
	})
}

// Logout clears the refresh-token cookie. Idempotent: succeeds whether or
// not a cookie was set.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AuthHandler) extractRefreshToken(c *gin.Context) string {
	if cookie, err := c.Cookie(refreshCookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&body); err == nil {
		return body.RefreshToken
	}
	return ""
}

func respondError(c *gin.Context, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		if svcErr.Status == http.StatusUnauthorized {
			c.Header("WWW-Authenticate", "Bearer")
		}
		c.JSON(svcErr.Status, gin.H{"error": svcErr.Code, "error_description": svcErr.Description})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error", "error_description": "Internal server error."})
}
