package token

import (
	"errors"
	"fmt"
	"time"

	gojose "github.com/go-jose/go-jose/v4"
	gojwt "github.com/go-jose/go-jose/v4/jwt"
)

// TypeRefresh marks refresh tokens. Access tokens carry no type claim;
// Validate reports whichever value is present and leaves the decision to
// the caller.
const TypeRefresh = "refresh"

// ErrInvalidToken covers malformed tokens, signature mismatches and expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded payload of an issued token.
type Claims struct {
	Correo    string
	Area      string
	UserID    int64
	TokenType string
	ExpiresAt time.Time
}

type customClaims struct {
	Area      string `json:"area,omitempty"`
	UserID    int64  `json:"user_id,omitempty"`
	TokenType string `json:"type,omitempty"`
}

// Issuer signs and validates HS256 tokens with the process-wide secret.
// Rotating the secret invalidates every outstanding token.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewIssuer constructs an issuer with the configured TTLs.
func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// AccessTTL exposes the configured access token lifetime.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// RefreshTTL exposes the configured refresh token lifetime.
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

// IssueAccessToken produces a signed short-lived token for API calls.
func (i *Issuer) IssueAccessToken(correo, area string, userID int64) (string, error) {
	return i.sign(correo, area, userID, "", i.accessTTL)
}

// IssueRefreshToken produces a signed long-lived token marked type=refresh.
func (i *Issuer) IssueRefreshToken(correo, area string, userID int64) (string, error) {
	return i.sign(correo, area, userID, TypeRefresh, i.refreshTTL)
}

func (i *Issuer) sign(correo, area string, userID int64, tokenType string, ttl time.Duration) (string, error) {
	signer, err := gojose.NewSigner(
		gojose.SigningKey{Algorithm: gojose.HS256, Key: i.secret},
		(&gojose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("new signer: %w", err)
	}

	now := time.Now().UTC()
	std := gojwt.Claims{
		Subject:  correo,
		IssuedAt: gojwt.NewNumericDate(now),
		Expiry:   gojwt.NewNumericDate(now.Add(ttl)),
	}
	custom := customClaims{
		Area:      area,
		UserID:    userID,
		TokenType: tokenType,
	}

	signed, err := gojwt.Signed(signer).Claims(std).Claims(custom).Serialize()
	if err != nil {
		return "", fmt.Errorf("serialize jwt: %w", err)
	}
	return signed, nil
}

// Validate verifies the signature and expiry and returns the decoded claims.
// Any malformed, forged or expired token yields ErrInvalidToken.
func (i *Issuer) Validate(tokenString string) (Claims, error) {
	parsed, err := gojwt.ParseSigned(tokenString, []gojose.SignatureAlgorithm{gojose.HS256})
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	var std gojwt.Claims
	var custom customClaims
	if err := parsed.Claims(i.secret, &std, &custom); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if err := std.Validate(gojwt.Expected{Time: time.Now()}); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if std.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{
		Correo:    std.Subject,
		Area:      custom.Area,
		UserID:    custom.UserID,
		TokenType: custom.TokenType,
	}
	if std.Expiry != nil {
		claims.ExpiresAt = std.Expiry.Time()
	}
	return claims, nil
}
