// Package memory holds the process-lifetime state tables. Nothing here
// survives a restart.
package memory

import (
	"slices"
	"time"

	"github.com/baharkarakas/ereceipt-backend/internal/models"
	repo "github.com/baharkarakas/ereceipt-backend/internal/repository"
)

func NewRepositories() repo.Repositories {
	return repo.Repositories{
		Receipts:   &receiptsRepo{newTable[models.Receipt]()},
		Tokens:     &tokensRepo{newTable[models.TokenRef]()},
		ShortLinks: &shortLinksRepo{newTable[models.ShortLink]()},
		Otps:       &otpsRepo{newTable[models.OtpEntry]()},
		AuditLogs:  NewAuditLogs(1000),
	}
}

type receiptsRepo struct{ t *table[models.Receipt] }

func (r *receiptsRepo) Create(rc models.Receipt) error {
	rc.Items = slices.Clone(rc.Items)
	return r.t.insert(rc.ID, rc)
}

func (r *receiptsRepo) Get(id string) (models.Receipt, error) { return r.t.get(id) }

func (r *receiptsRepo) Update(id string, fn func(*models.Receipt) error) (models.Receipt, error) {
	return r.t.update(id, fn)
}

func (r *receiptsRepo) Delete(id string) { r.t.delete(id) }

func (r *receiptsRepo) DeleteExpired(before time.Time) int {
	return len(r.t.deleteWhere(func(rc models.Receipt) bool { return rc.Expired(before) }))
}

type tokensRepo struct{ t *table[models.TokenRef] }

func (r *tokensRepo) Create(token string, ref models.TokenRef) error { return r.t.insert(token, ref) }
func (r *tokensRepo) Get(token string) (models.TokenRef, error)      { return r.t.get(token) }
func (r *tokensRepo) Delete(token string)                            { r.t.delete(token) }

type shortLinksRepo struct{ t *table[models.ShortLink] }

func (r *shortLinksRepo) Create(l models.ShortLink) error { return r.t.insert(l.Code, l) }

func (r *shortLinksRepo) Get(code string) (models.ShortLink, error) { return r.t.get(code) }

func (r *shortLinksRepo) Update(code string, fn func(*models.ShortLink) error) (models.ShortLink, error) {
	return r.t.update(code, fn)
}

func (r *shortLinksRepo) Delete(code string) { r.t.delete(code) }

func (r *shortLinksRepo) DeleteExpired(before time.Time) []models.ShortLink {
	return r.t.deleteWhere(func(l models.ShortLink) bool { return l.Expired(before) })
}

type otpsRepo struct{ t *table[models.OtpEntry] }

func (r *otpsRepo) Put(token string, e models.OtpEntry)       { r.t.put(token, e) }
func (r *otpsRepo) Get(token string) (models.OtpEntry, error) { return r.t.get(token) }
func (r *otpsRepo) Delete(token string)                       { r.t.delete(token) }

func (r *otpsRepo) Update(token string, fn func(*models.OtpEntry) error) (models.OtpEntry, error) {
	return r.t.update(token, fn)
}

func (r *otpsRepo) DeleteExpired(now time.Time) int {
	return len(r.t.deleteWhere(func(e models.OtpEntry) bool { return e.Expired(now) }))
}
