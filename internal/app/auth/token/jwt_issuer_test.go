package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	customErrors "github.com/lumenchat/auth-service/internal/domain/auth/errors"
	"github.com/lumenchat/auth-service/internal/infra/config"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "0123456789abcdef0123456789abcdef",
		JWTIssuer: "test",
		TokenTTL:  time.Minute,
	}
}

func TestJWTIssuer_IssueVerify(t *testing.T) {
	issuer, err := NewJWTIssuer(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	uid := uuid.New()

	token, exp, err := issuer.Issue(uid)
	if err != nil || token == "" || exp.IsZero() {
		t.Fatalf("bad issue: %v", err)
	}
	if until := time.Until(exp); until <= 0 || until > time.Minute {
		t.Fatalf("expiry out of range: %v", until)
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if got != uid {
		t.Fatalf("want %s got %s", uid, got)
	}
}

func TestJWTIssuer_EmptySecret(t *testing.T) {
	if _, err := NewJWTIssuer(&config.Config{TokenTTL: time.Minute}); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestJWTIssuer_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.TokenTTL = -time.Minute
	issuer, _ := NewJWTIssuer(cfg)

	token, _, err := issuer.Issue(uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	_, err = issuer.Verify(token)
	if !errors.Is(err, customErrors.ErrTokenExpired) {
		t.Fatalf("want expired, got %v", err)
	}
	if !customErrors.IsInvalidToken(err) {
		t.Fatal("expired must still read as invalid token")
	}
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	issuer, _ := NewJWTIssuer(testConfig())
	otherCfg := testConfig()
	otherCfg.JWTSecret = "ffffffffffffffffffffffffffffffff"
	other, _ := NewJWTIssuer(otherCfg)

	token, _, _ := other.Issue(uuid.New())
	_, err := issuer.Verify(token)
	if !errors.Is(err, customErrors.ErrTokenSignature) {
		t.Fatalf("want signature error, got %v", err)
	}
}

func TestJWTIssuer_Malformed(t *testing.T) {
	issuer, _ := NewJWTIssuer(testConfig())
	_, err := issuer.Verify("not-a-token")
	if !errors.Is(err, customErrors.ErrTokenMalformed) {
		t.Fatalf("want malformed, got %v", err)
	}
}

func TestJWTIssuer_RejectsForeignAlg(t *testing.T) {
	issuer, _ := NewJWTIssuer(testConfig())
	raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": uuid.NewString(),
	}).SignedString([]byte(testConfig().JWTSecret))

	if _, err := issuer.Verify(raw); !customErrors.IsInvalidToken(err) {
		t.Fatalf("expected invalid token for foreign alg, got %v", err)
	}
}

func TestJWTIssuer_NonUUIDSubject(t *testing.T) {
	issuer, _ := NewJWTIssuer(testConfig())
	raw, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte(testConfig().JWTSecret))

	_, err := issuer.Verify(raw)
	if !errors.Is(err, customErrors.ErrTokenMalformed) {
		t.Fatalf("want malformed, got %v", err)
	}
}
