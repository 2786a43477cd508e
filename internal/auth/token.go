package auth

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a token that failed signature or expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims defines the bearer token payload.
type Claims struct {
	UserID string `json:"user_id"`
	jwtlib.RegisteredClaims
}

// TokenIssuer mints and verifies signed bearer tokens.
// Tokens are stateless: there is no server-side revocation list,
// a token is valid until its expiry instant.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer with the given signing secret and lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a new HS256 token identifying userID, expiring after the
// configured TTL.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user ID.
// Pure function, no side effects: expired and tampered tokens both
// fail with ErrInvalidToken.
func (t *TokenIssuer) Verify(raw string) (string, error) {
	parsed, err := jwtlib.ParseWithClaims(raw, &Claims{}, func(tk *jwtlib.Token) (interface{}, error) {
		return t.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}))
	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
