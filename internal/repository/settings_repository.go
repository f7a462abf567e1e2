package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sixphrase/slot-reservation/internal/model"
)

// settingsKey is the primary key of the singleton system_settings row.
const settingsKey = "main"

// SettingsRepo reads and mutates the system lock gate.  The gate is a
// single row; Get returns an unlocked zero value when the row has not been
// seeded yet so the gate fails open only at bootstrap.
type SettingsRepo struct {
	db *sql.DB
}

// NewSettingsRepo returns a SettingsRepo bound to the given database.
func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Settings returns the current lock state.
func (r *SettingsRepo) Settings(ctx context.Context) (model.SystemSettings, error) {
	const q = `SELECT is_system_locked, lock_message, updated_at FROM system_settings WHERE id = ?`
	var (
		s   model.SystemSettings
		msg sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, settingsKey).Scan(&s.IsSystemLocked, &msg, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.SystemSettings{}, nil
	}
	if err != nil {
		return model.SystemSettings{}, err
	}
	if msg.Valid {
		s.LockMessage = msg.String
	}
	return s, nil
}

// SetLocked updates the gate.  Setting an already-locked system to locked
// (or unlocked to unlocked) is a no-op success; the UPDATE is idempotent.
// An empty message clears the stored one.
func (r *SettingsRepo) SetLocked(ctx context.Context, locked bool, message string) error {
	// lock_message is NOT NULL; the empty string is the cleared state.
	_, err := r.db.ExecContext(ctx,
		`UPDATE system_settings SET is_system_locked = ?, lock_message = ?, updated_at = ? WHERE id = ?`,
		locked, message, time.Now().UTC(), settingsKey)
	return err
}
