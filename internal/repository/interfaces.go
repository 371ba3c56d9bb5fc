package repository

import (
	"context"
	"errors"
	"time"

	"github.com/baharkarakas/ereceipt-backend/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Update callbacks run while the row is locked; returning an error leaves the
// row untouched.

type Receipts interface {
	Create(r models.Receipt) error
	Get(id string) (models.Receipt, error)
	Update(id string, fn func(*models.Receipt) error) (models.Receipt, error)
	Delete(id string)
	DeleteExpired(before time.Time) int
}

type Tokens interface {
	Create(token string, ref models.TokenRef) error
	Get(token string) (models.TokenRef, error)
	Delete(token string)
}

type ShortLinks interface {
	Create(l models.ShortLink) error
	Get(code string) (models.ShortLink, error)
	Update(code string, fn func(*models.ShortLink) error) (models.ShortLink, error)
	Delete(code string)
	// DeleteExpired returns the removed links so their tokens can be dropped too.
	DeleteExpired(before time.Time) []models.ShortLink
}

type Otps interface {
	Put(token string, e models.OtpEntry)
	Get(token string) (models.OtpEntry, error)
	Update(token string, fn func(*models.OtpEntry) error) (models.OtpEntry, error)
	Delete(token string)
	DeleteExpired(now time.Time) int
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

type Repositories struct {
	Receipts   Receipts
	Tokens     Tokens
	ShortLinks ShortLinks
	Otps       Otps
	AuditLogs  AuditLogs
}
