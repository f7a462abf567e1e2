package model

import "time"

// SystemSettings is the singleton lock gate row (system_settings.id='main').
// When IsSystemLocked is set, every new submission is rejected before any
// other check; the optional LockMessage is surfaced to callers.
type SystemSettings struct {
	IsSystemLocked bool      `json:"is_system_locked"`
	LockMessage    string    `json:"lock_message,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}
