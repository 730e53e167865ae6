package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 24 * time.Hour

// ErrInvalidToken covers every verification failure: expired, malformed,
// wrong signature. Callers map it to 401, details are not surfaced.
var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	ID    string `json:"id"`
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens. It is constructed once at
// startup from the configured secret, there is no ambient fallback.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is not configured")
	}
	return &TokenManager{secret: []byte(secret)}, nil
}

func (tm *TokenManager) Generate(id string, userRole string, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:    id,
		Role:  userRole,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

func (tm *TokenManager) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
