package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mitwpu/finditnow/internal/model"
)

// Claims represents the session cookie JWT. The registered ID field carries
// the session id under which the backend bearer token is stored locally.
// IsAdmin is computed once at login and reused for every role check.
type Claims struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
	IsAdmin    bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// User reconstructs the session user from the claims.
func (c *Claims) User() *model.User {
	return &model.User{
		ID:         c.UserID,
		Name:       c.Name,
		Email:      c.Email,
		Department: c.Department,
		Role:       c.Role,
		IsAdmin:    c.IsAdmin,
	}
}

// SessionExpiry is the default session lifetime.
const SessionExpiry = 7 * 24 * time.Hour

// GenerateToken creates a session JWT for a user, bound to a session id.
func GenerateToken(secret, sessionID string, user model.User) (string, error) {
	claims := Claims{
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Department: user.Department,
		Role:       user.Role,
		IsAdmin:    user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a session JWT, returning the claims.
func ValidateToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
