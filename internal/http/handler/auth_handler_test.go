package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zuckmantra/dashboard-Camila/internal/domain"
	"github.com/Zuckmantra/dashboard-Camila/internal/http/handler"
	"github.com/Zuckmantra/dashboard-Camila/internal/repository"
	"github.com/Zuckmantra/dashboard-Camila/internal/service"
	"github.com/Zuckmantra/dashboard-Camila/internal/token"
)

func newAuthRouter(users ...domain.User) (*gin.Engine, *token.Issuer) {
	gin.SetMode(gin.TestMode)

	repo := &stubUserRepo{users: map[string]domain.User{}}
	for _, u := range users {
		repo.users[u.Correo] = u
	}
	issuer := token.NewIssuer("handler-test-secret-0123456789abcdef012", time.Hour, 7*24*time.Hour)
	authService := service.NewAuthService(repo, issuer, zap.NewNop())
	h := handler.NewAuthHandler(authService)

	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/refresh", h.Refresh)
	r.POST("/api/auth/logout", h.Logout)
	return r, issuer
}

func testUser() domain.User {
	return domain.User{ID: 1, Nombre: "Camila", Correo: "camila@acme.cl", Contrasena: "secreta", Area: "TI"}
}

func TestLoginSetsRefreshCookie(t *testing.T) {
	r, _ := newAuthRouter(testUser())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"correo":"camila@acme.cl","contrasena":"secreta"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AccessToken  string `json:"access_token"`
		TokenType    string `json:"token_type"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			Nombre string `json:"nombre"`
			Correo string `json:"correo"`
			Area   string `json:"area"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	require.Equal(t, "bearer", body.TokenType)
	require.Equal(t, "Camila", body.User.Nombre)
	require.Equal(t, "TI", body.User.Area)

	cookie := findCookie(t, w.Result().Cookies(), "refresh_token")
	require.Equal(t, body.RefreshToken, cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, "/", cookie.Path)
	require.Equal(t, int((7 * 24 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := newAuthRouter(testUser())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"correo":"camila@acme.cl","contrasena":"otra"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"error":"unauthorized","error_description":"Correo o contraseña inválidos"}`, w.Body.String())
	require.Empty(t, w.Result().Cookies())
}

func TestRefreshFromCookie(t *testing.T) {
	r, issuer := newAuthRouter(testUser())

	refresh, err := issuer.IssueRefreshToken("camila@acme.cl", "TI", 1)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refresh})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	claims, err := issuer.Validate(body.AccessToken)
	require.NoError(t, err)
	require.Empty(t, claims.TokenType)
}

func TestRefreshFromBody(t *testing.T) {
	r, issuer := newAuthRouter(testUser())

	refresh, err := issuer.IssueRefreshToken("camila@acme.cl", "TI", 1)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(`{"refresh_token":"`+refresh+`"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshWithoutTokenFails(t *testing.T) {
	r, _ := newAuthRouter(testUser())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestLogoutClearsCookieAndIsIdempotent(t *testing.T) {
	r, _ := newAuthRouter()

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"status":"ok"}`, w.Body.String())

		cookie := findCookie(t, w.Result().Cookies(), "refresh_token")
		require.Empty(t, cookie.Value)
		require.Negative(t, cookie.MaxAge)
	}
}

func findCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

type stubUserRepo struct {
	users map[string]domain.User
}

func (s *stubUserRepo) FindByCorreo(ctx context.Context, correo string) (domain.User, error) {
	if u, ok := s.users[correo]; ok {
		return u, nil
	}
	return domain.User{}, repository.ErrNotFound
}
