package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Zuckmantra/dashboard-Camila/internal/domain"
	"github.com/Zuckmantra/dashboard-Camila/internal/password"
	"github.com/Zuckmantra/dashboard-Camila/internal/repository"
	"github.com/Zuckmantra/dashboard-Camila/internal/token"
)

// TokenPair bundles the credentials issued on login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService implements the session lifecycle: login, refresh, and the
// bearer gate. Sessions are stateless; the only state is the token held by
// the client.
type AuthService struct {
	users  repository.UserRepository
	tokens *token.Issuer
	logger *zap.Logger
	tracer trace.Tracer
}

// NewAuthService wires dependencies.
func NewAuthService(users repository.UserRepository, tokens *token.Issuer, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.L()
	}
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
		tracer: otel.Tracer("github.com/Zuckmantra/dashboard-Camila/internal/service"),
	}
}

// RefreshTTL exposes the refresh token lifetime for cookie max-age.
func (s *AuthService) RefreshTTL() time.Duration {
	return s.tokens.RefreshTTL()
}

// Login validates credentials and issues an access plus refresh token.
// Failures are indistinguishable between unknown user and wrong password.
func (s *AuthService) Login(ctx context.Context, correo, contrasena string) (TokenPair, domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	normalized := strings.TrimSpace(correo)
	user, err := s.users.FindByCorreo(ctx, normalized)
	if err != nil {
		s.logger.Warn("login failed", zap.String("correo", normalized))
		return TokenPair{}, domain.User{}, errInvalidCredentials()
	}

	if !password.Check(contrasena, user.PasswordHash, user.Contrasena) {
		s.logger.Warn("login failed", zap.String("correo", normalized))
		return TokenPair{}, domain.User{}, errInvalidCredentials()
	}

	access, err := s.tokens.IssueAccessToken(user.Correo, user.Area, user.ID)
	if err != nil {
		span.RecordError(err)
		return TokenPair{}, domain.User{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user.Correo, user.Area, user.ID)
	if err != nil {
		span.RecordError(err)
		return TokenPair{}, domain.User{}, fmt.Errorf("issue refresh token: %w", err)
	}

	s.audit("login.success", "correo", user.Correo, "user_id", user.ID)
	return TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// Refresh validates a refresh token and mints a new access token. The
// refresh token itself is left untouched. A token carrying an explicit
// non-refresh type claim is rejected; a token without the claim is accepted,
// matching the deployed behavior.
func (s *AuthService) Refresh(ctx context.Context, tokenString string) (string, domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Refresh")
	defer span.End()

	if strings.TrimSpace(tokenString) == "" {
		return "", domain.User{}, errUnauthorized("No refresh token")
	}

	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return "", domain.User{}, errUnauthorized("Invalid refresh token")
	}
	if claims.TokenType != "" && claims.TokenType != token.TypeRefresh {
		s.logger.Warn("refresh rejected", zap.String("token_type", claims.TokenType))
		return "", domain.User{}, errUnauthorized("Invalid token type")
	}

	user, err := s.users.FindByCorreo(ctx, claims.Correo)
	if err != nil {
		return "", domain.User{}, errUnauthorized("User not found")
	}

	access, err := s.tokens.IssueAccessToken(user.Correo, user.Area, user.ID)
	if err != nil {
		span.RecordError(err)
		return "", domain.User{}, fmt.Errorf("issue access token: %w", err)
	}

	s.audit("refresh.success", "correo", user.Correo, "user_id", user.ID)
	return access, user, nil
}

// Authenticate resolves the user behind a bearer token. The user is
// re-resolved from storage so area changes and deletions take effect
// immediately rather than at token expiry.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (domain.User, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Authenticate")
	defer span.End()

	claims, err := s.tokens.Validate(tokenString)
	if err != nil {
		return domain.User{}, errUnauthorized("No se pudo validar las credenciales")
	}

	user, err := s.users.FindByCorreo(ctx, claims.Correo)
	if err != nil {
		return domain.User{}, errUnauthorized("No se pudo validar las credenciales")
	}
	return user, nil
}

func (s *AuthService) audit(event string, attrs ...any) {
	fields := make([]zap.Field, 0, len(attrs)/2+2)
	fields = append(fields, zap.String("event", event), zap.Time("timestamp", time.Now().UTC()))
	for i := 0; i+1 < len(attrs); i += 2 {
		key, ok := attrs[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, attrs[i+1]))
	}
	s.logger.Info("audit", fields...)
}
