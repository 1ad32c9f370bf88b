// Package store persists local session state: which browser session maps to
// which backend bearer token. Tokens are sealed at rest so a leaked database
// file does not leak live credentials.
package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// CreateSession stores a backend bearer token under a fresh session id,
// sealed with key, and returns the session id.
func CreateSession(ctx context.Context, db *sql.DB, key *[32]byte, userID, token string, expiresAt time.Time) (string, error) {
	sid := uuid.NewString()

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	sealed := secretbox.Seal(nil, []byte(token), &nonce, key)

	_, err := db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, token_nonce, token_sealed, expires_at) VALUES (?, ?, ?, ?, ?)`,
		sid, userID, nonce[:], sealed, expiresAt,
	)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}

	// Opportunistically clean up expired sessions.
	_, _ = db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, time.Now())

	return sid, nil
}

// SessionToken returns the bearer token for a session id, or "" if the
// session does not exist or has expired.
func SessionToken(ctx context.Context, db *sql.DB, key *[32]byte, sid string) (string, error) {
	var nonceBytes, sealed []byte
	err := db.QueryRowContext(ctx,
		`SELECT token_nonce, token_sealed FROM sessions WHERE id = ? AND expires_at >= ?`,
		sid, time.Now(),
	).Scan(&nonceBytes, &sealed)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying session: %w", err)
	}

	if len(nonceBytes) != nonceSize {
		return "", fmt.Errorf("malformed session nonce")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], nonceBytes)

	token, ok := secretbox.Open(nil, sealed, &nonce, key)
	if !ok {
		return "", fmt.Errorf("unsealing session token")
	}
	return string(token), nil
}

// DeleteSession removes a session (logout or forced expiry).
func DeleteSession(ctx context.Context, db *sql.DB, sid string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sid)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
