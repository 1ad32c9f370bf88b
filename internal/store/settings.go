package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// getOrCreateSecret retrieves a hex-encoded secret from the settings table,
// generating and storing one if missing. Uses INSERT OR IGNORE + re-SELECT
// to avoid TOCTOU race on concurrent startup.
func getOrCreateSecret(ctx context.Context, db *sql.DB, name string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating %s: %w", name, err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		name, candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing %s: %w", name, err)
	}

	// Always read back (either our insert or the existing value).
	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, name,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying %s: %w", name, err)
	}

	return secret, nil
}

// GetJWTSecret returns the session cookie signing secret, generating one on
// first run.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	return getOrCreateSecret(ctx, db, "jwt_secret")
}

// GetSealKey returns the 32-byte key used to seal bearer tokens at rest,
// generating one on first run.
func GetSealKey(ctx context.Context, db *sql.DB) (*[32]byte, error) {
	hexKey, err := getOrCreateSecret(ctx, db, "seal_key")
	if err != nil {
		return nil, err
	}

	raw, err := hex.DecodeString(hexKey)
	if err != nil || len(raw) != 32 {
		return nil, fmt.Errorf("malformed seal key in settings")
	}

	var key [32]byte
	copy(key[:], raw)
	return &key, nil
}
