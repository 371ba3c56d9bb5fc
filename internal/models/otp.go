package models

import "time"

// OtpEntry is the pending one-time code for a token. Only the bcrypt hash of
// the code is kept.
type OtpEntry struct {
	CodeHash     []byte
	IssuedAt     time.Time
	ExpiresAt    time.Time
	AttemptsLeft int
}

func (o OtpEntry) Expired(now time.Time) bool { return !now.Before(o.ExpiresAt) }
