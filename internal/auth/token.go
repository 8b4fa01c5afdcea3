package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every way a bearer token can fail validation.
var ErrInvalidToken = fmt.Errorf("%w: invalid or expired token", apperr.ErrUnauthenticated)

// Claims is the payload of an access token. Subject carries the username.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates HS256 access tokens. The key is fixed for
// the life of the process.
type TokenIssuer struct {
	key []byte
	Now func() time.Time
}

func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	return &TokenIssuer{key: []byte(secret), Now: time.Now}, nil
}

func (i *TokenIssuer) now() time.Time {
	if i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

// Issue returns a token for subject that expires ttl after now.
func (i *TokenIssuer) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if strings.TrimSpace(subject) == "" {
		return "", time.Time{}, fmt.Errorf("%w: token subject is required", apperr.ErrInvalid)
	}
	if ttl <= 0 {
		return "", time.Time{}, fmt.Errorf("%w: token ttl must be positive", apperr.ErrInvalid)
	}
	// NumericDate has whole-second precision; the reported expiry must be
	// the signed one.
	issuedAt := jwt.NewNumericDate(i.now().UTC())
	expiresAt := jwt.NewNumericDate(issuedAt.Add(ttl))
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt.Time.UTC(), nil
}

// Validate returns the token subject, or ErrInvalidToken when the signature,
// structure, algorithm or expiry is wrong. No clock skew is tolerated.
func (i *TokenIssuer) Validate(token string) (string, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(strings.TrimSpace(token), &claims, i.Keyfunc(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Keyfunc is shared with the HTTP middleware so both paths pin HS256.
func (i *TokenIssuer) Keyfunc() jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.key, nil
	}
}
