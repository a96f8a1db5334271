package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/accountly/user-service/internal/core/ports"
)

// JWTIssuer signs HS256 bearer tokens. Secret and TTL are fixed at
// construction and immutable for the process lifetime.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token embedding the user id and, when present,
// the role claim.
func (i *JWTIssuer) Issue(claims ports.TokenClaims) (string, error) {
	mc := jwt.MapClaims{
		"id":  claims.UserID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(i.ttl).Unix(),
	}
	if claims.Role != "" {
		mc["role"] = claims.Role
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	return t.SignedString(i.secret)
}
