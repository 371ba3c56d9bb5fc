package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/baharkarakas/ereceipt-backend/internal/metrics"
	repo "github.com/baharkarakas/ereceipt-backend/internal/repository"
)

// Sweeper evicts state that can no longer be used. OTP entries go as soon as
// they expire; receipts, links and tokens are kept for retention after expiry
// so late visitors still see "expired" rather than "unknown".
type Sweeper struct {
	repos     repo.Repositories
	retention time.Duration
	now       func() time.Time
}

func NewSweeper(r repo.Repositories, retention time.Duration) *Sweeper {
	return &Sweeper{repos: r, retention: retention, now: time.Now}
}

type SweepStats struct {
	Otps     int
	Links    int
	Receipts int
}

func (s *Sweeper) SweepOnce() SweepStats {
	now := s.now()
	cutoff := now.Add(-s.retention)

	var st SweepStats
	st.Otps = s.repos.Otps.DeleteExpired(now)
	links := s.repos.ShortLinks.DeleteExpired(cutoff)
	for _, l := range links {
		s.repos.Tokens.Delete(l.Token)
	}
	st.Links = len(links)
	st.Receipts = s.repos.Receipts.DeleteExpired(cutoff)

	metrics.SweptEntries.WithLabelValues("otps").Add(float64(st.Otps))
	metrics.SweptEntries.WithLabelValues("short_links").Add(float64(st.Links))
	metrics.SweptEntries.WithLabelValues("receipts").Add(float64(st.Receipts))
	return st
}

// Run sweeps every interval until ctx is done. interval <= 0 disables it.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			st := s.SweepOnce()
			if st.Otps+st.Links+st.Receipts > 0 {
				slog.Debug("sweep", "otps", st.Otps, "links", st.Links, "receipts", st.Receipts)
			}
		}
	}
}
