package token_test

import (
	"testing"
	"time"

	gojose "github.com/go-jose/go-jose/v4"
	gojwt "github.com/go-jose/go-jose/v4/jwt"
	"github.com/stretchr/testify/require"

	"github.com/Zuckmantra/dashboard-Camila/internal/token"
)

// go-jose v4 enforces the RFC 7518 minimum HMAC key size: HS256 secrets
// must be at least 32 bytes, so the fixtures here are padded accordingly.
const testSecret = "test-secret-0123456789abcdef0123456789"

func TestAccessTokenRoundTrip(t *testing.T) {
	issuer := token.NewIssuer(testSecret, time.Hour, 7*24*time.Hour)

	signed, err := issuer.IssueAccessToken("camila@acme.cl", "TI", 42)
	require.NoError(t, err)

	claims, err := issuer.Validate(signed)
	require.NoError(t, err)
	require.Equal(t, "camila@acme.cl", claims.Correo)
	require.Equal(t, "TI", claims.Area)
	require.Equal(t, int64(42), claims.UserID)
	require.Empty(t, claims.TokenType)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, time.Minute)
}

func TestRefreshTokenCarriesType(t *testing.T) {
	issuer := token.NewIssuer(testSecret, time.Hour, 7*24*time.Hour)

	signed, err := issuer.IssueRefreshToken("camila@acme.cl", "TI", 42)
	require.NoError(t, err)

	claims, err := issuer.Validate(signed)
	require.NoError(t, err)
	require.Equal(t, token.TypeRefresh, claims.TokenType)
	require.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt, time.Minute)
}

func TestValidateRejectsForgedToken(t *testing.T) {
	other := token.NewIssuer("another-secret-0123456789abcdef01234567", time.Hour, time.Hour)
	signed, err := other.IssueAccessToken("camila@acme.cl", "TI", 42)
	require.NoError(t, err)

	issuer := token.NewIssuer(testSecret, time.Hour, time.Hour)
	_, err = issuer.Validate(signed)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	issuer := token.NewIssuer(testSecret, time.Hour, time.Hour)

	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := issuer.Validate(input)
		require.ErrorIs(t, err, token.ErrInvalidToken)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	signed := signRaw(t, gojwt.Claims{
		Subject:  "camila@acme.cl",
		IssuedAt: gojwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		Expiry:   gojwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	issuer := token.NewIssuer(testSecret, time.Hour, time.Hour)
	_, err := issuer.Validate(signed)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestValidateRejectsMissingSubject(t *testing.T) {
	signed := signRaw(t, gojwt.Claims{
		IssuedAt: gojwt.NewNumericDate(time.Now()),
		Expiry:   gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	issuer := token.NewIssuer(testSecret, time.Hour, time.Hour)
	_, err := issuer.Validate(signed)
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func signRaw(t *testing.T, claims gojwt.Claims) string {
	t.Helper()

	signer, err := gojose.NewSigner(
		gojose.SigningKey{Algorithm: gojose.HS256, Key: []byte(testSecret)},
		(&gojose.SignerOptions{}).WithType("JWT"),
	)
	require.NoError(t, err)

	signed, err := gojwt.Signed(signer).Claims(claims).Serialize()
	require.NoError(t, err)
	return signed
}
