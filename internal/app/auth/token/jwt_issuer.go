package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	customErrors "github.com/lumenchat/auth-service/internal/domain/auth/errors"
	domaintoken "github.com/lumenchat/auth-service/internal/domain/auth/token"
	"github.com/lumenchat/auth-service/internal/infra/config"
)

type SessionClaims struct {
	jwt.RegisteredClaims
}

type jwtIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewJWTIssuer builds an HS256 issuer from the process-wide signing secret.
func NewJWTIssuer(cfg *config.Config) (domaintoken.Issuer, error) {
	if cfg.JWTSecret == "" {
		return nil, customErrors.WrapInternal(errors.New("empty signing secret"), "init token issuer")
	}
	return &jwtIssuer{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		issuer: cfg.JWTIssuer,
	}, nil
}

func (j *jwtIssuer) Issue(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, customErrors.WrapInternal(err, "sign session token")
	}

	return signed, claims.ExpiresAt.Time, nil
}

func (j *jwtIssuer) Verify(raw string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(raw, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrTokenSignature
		}
		return j.secret, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return uuid.Nil, customErrors.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return uuid.Nil, customErrors.ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return uuid.Nil, customErrors.ErrTokenMalformed
	default:
		return uuid.Nil, customErrors.ErrInvalidToken
	}

	if !token.Valid {
		return uuid.Nil, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return uuid.Nil, customErrors.ErrTokenMalformed
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, customErrors.ErrTokenMalformed
	}

	return uid, nil
}
