package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zuckmantra/dashboard-Camila/internal/domain"
	"github.com/Zuckmantra/dashboard-Camila/internal/http/middleware"
	"github.com/Zuckmantra/dashboard-Camila/internal/repository"
	"github.com/Zuckmantra/dashboard-Camila/internal/service"
	"github.com/Zuckmantra/dashboard-Camila/internal/token"
)

func newProtectedRouter(user domain.User) (*gin.Engine, *token.Issuer) {
	gin.SetMode(gin.TestMode)

	repo := &stubUserRepo{user: user}
	issuer := token.NewIssuer("middleware-test-secret-0123456789abcdef", time.Hour, time.Hour)
	auth := &middleware.Auth{AuthService: service.NewAuthService(repo, issuer, zap.NewNop())}

	r := gin.New()
	r.GET("/open", auth.RequireAuth, func(c *gin.Context) {
		u, _ := middleware.GetCurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"correo": u.Correo})
	})
	r.GET("/dashboard", auth.RequireAuth, auth.RequireArea("TI", "ADMIN"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, issuer
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	r, _ := newProtectedRouter(domain.User{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	r, issuer := newProtectedRouter(domain.User{Correo: "camila@acme.cl"})

	signed, err := issuer.IssueAccessToken("camila@acme.cl", "TI", 1)
	require.NoError(t, err)

	for _, header := range []string{signed, "Basic " + signed, "Bearer"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code, "header=%q", header)
	}
}

func TestRequireAuthAttachesUser(t *testing.T) {
	r, issuer := newProtectedRouter(domain.User{Correo: "camila@acme.cl", Area: "VENTAS"})

	signed, err := issuer.IssueAccessToken("camila@acme.cl", "VENTAS", 1)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "camila@acme.cl")
}

func TestRequireAreaForbidsOtherAreas(t *testing.T) {
	r, issuer := newProtectedRouter(domain.User{Correo: "camila@acme.cl", Area: "VENTAS"})

	signed, err := issuer.IssueAccessToken("camila@acme.cl", "VENTAS", 1)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.JSONEq(t, `{"error":"forbidden","error_description":"No autorizado para ver el dashboard"}`, w.Body.String())
}

func TestRequireAreaIsCaseInsensitive(t *testing.T) {
	r, issuer := newProtectedRouter(domain.User{Correo: "camila@acme.cl", Area: "ti"})

	signed, err := issuer.IssueAccessToken("camila@acme.cl", "ti", 1)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

type stubUserRepo struct {
	user domain.User
}

func (s *stubUserRepo) FindByCorreo(ctx context.Context, correo string) (domain.User, error) {
	if s.user.Correo == correo {
		return s.user, nil
	}
	return domain.User{}, repository.ErrNotFound
}
