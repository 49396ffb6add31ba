package models

import "time"

// SessionRecord backs the local PIN gate. Entity repositories never read it.
// Generation is bumped whenever issued session cookies must stop working.
type SessionRecord struct {
	PINHash    string    `json:"pinHash,omitempty"`
	Secret     string    `json:"secret,omitempty"`
	Generation int       `json:"generation"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (record SessionRecord) HasPIN() bool {
	return record.PINHash != ""
}
