package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal kinds embedded in bearer tokens.
const (
	KindMerchant = "merchant"
	KindCustomer = "customer"
	KindAdmin    = "admin"
)

type jwtCustomClaims struct {
	Kind string `json:"kind"`
	jwt.RegisteredClaims
}

// TokenInfo holds the validated contents of a bearer token.
type TokenInfo struct {
	PrincipalID uuid.UUID
	Kind        string
	JTI         string
	ExpiresAt   time.Time
}

// GenerateToken creates a signed JWT for the given principal and kind.
// The returned JTI identifies the token for later revocation.
func GenerateToken(secret string, principalID uuid.UUID, kind string, ttl time.Duration) (string, string, error) {
	jti := uuid.NewString()
	claims := &jwtCustomClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID.String(),
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	return signed, jti, err
}

// ParseToken validates the token and returns the embedded principal info.
func ParseToken(secret, tokenString string) (*TokenInfo, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, jwt.ErrTokenInvalidClaims
	}

	info := &TokenInfo{
		PrincipalID: id,
		Kind:        claims.Kind,
		JTI:         claims.ID,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
