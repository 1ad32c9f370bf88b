package model

import (
	"fmt"
	"strings"
)

// User represents an authenticated portal user as reported by the backend.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Role       string `json:"role"`
	IsAdmin    bool   `json:"isAdmin"`
}

// Roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// NormalizeRole maps the role spellings the backend uses onto the canonical
// ones. Spring-style authorities ("ROLE_ADMIN") and plain names both appear
// in responses.
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimPrefix(role, "ROLE_")) {
	case "admin", "administrator":
		return RoleAdmin
	default:
		return RoleUser
	}
}

// ValidateEmail checks that an address belongs to the institutional domain.
func ValidateEmail(email, domain string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("email %q is not a valid address", email)
	}
	if domain != "" && !strings.EqualFold(email[at+1:], domain) {
		return fmt.Errorf("email must end in @%s", domain)
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
