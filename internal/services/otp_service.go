package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/baharkarakas/ereceipt-backend/internal/auth"
	"github.com/baharkarakas/ereceipt-backend/internal/codegen"
	"github.com/baharkarakas/ereceipt-backend/internal/config"
	"github.com/baharkarakas/ereceipt-backend/internal/metrics"
	"github.com/baharkarakas/ereceipt-backend/internal/models"
	"github.com/baharkarakas/ereceipt-backend/internal/notify"
	repo "github.com/baharkarakas/ereceipt-backend/internal/repository"
	"github.com/baharkarakas/ereceipt-backend/internal/worker"
)

const otpSentPlaceholder = "SENT"

// OtpService gates receipt viewing behind a code texted to the receipt's
// MSISDN. Send and Verify for the same token never interleave.
type OtpService struct {
	repos    repo.Repositories
	cfg      config.Config
	notifier notify.Notifier
	wp       *worker.Pool
	sessions *auth.SessionManager
	audit    *Auditor
	locks    *keyLock
	now      func() time.Time
}

func NewOtpService(r repo.Repositories, cfg config.Config, n notify.Notifier, wp *worker.Pool, sm *auth.SessionManager, a *Auditor) *OtpService {
	return &OtpService{
		repos:    r,
		cfg:      cfg,
		notifier: n,
		wp:       wp,
		sessions: sm,
		audit:    a,
		locks:    newKeyLock(),
		now:      time.Now,
	}
}

// Send mints a fresh code for token, replacing any pending one. The returned
// string is the code itself in demo mode and "SENT" otherwise.
func (s *OtpService) Send(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", ErrValidation
	}
	unlock := s.locks.Lock(token)
	defer unlock()

	ref, err := s.repos.Tokens.Get(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	rc, err := s.repos.Receipts.Get(ref.ReceiptID)
	if err != nil {
		return "", ErrInvalidToken
	}

	code, err := codegen.GenerateOtp()
	if err != nil {
		return "", err
	}
	hash, err := auth.HashCode(code, s.cfg.OTPHashCost)
	if err != nil {
		return "", fmt.Errorf("hash otp: %w", err)
	}
	now := s.now()
	s.repos.Otps.Put(token, models.OtpEntry{
		CodeHash:     hash,
		IssuedAt:     now,
		ExpiresAt:    now.Add(s.cfg.OTPTTL),
		AttemptsLeft: s.cfg.OTPMaxAttempts,
	})

	msisdn := rc.Msisdn
	body := fmt.Sprintf("Your e-receipt access code is %s. It expires in %d minutes.", code, int(s.cfg.OTPTTL.Minutes()))
	s.wp.Submit(func() {
		if err := s.notifier.SendSMS(context.Background(), msisdn, body); err != nil {
			slog.Error("otp sms delivery", "to", msisdn, "err", err)
		}
	})

	metrics.OtpSent.Inc()
	s.audit.Record("receipt", rc.ID, "otp_sent", nil)
	slog.InfoContext(ctx, "otp sent", "receipt_id", rc.ID)

	if s.cfg.Demo {
		return code, nil
	}
	return otpSentPlaceholder, nil
}

type VerifyResult struct {
	ReceiptID        string    `json:"receiptId"`
	ViewToken        string    `json:"viewToken"`
	ViewTokenExpires time.Time `json:"viewTokenExpiresAt"`
}

// Verify checks code against the pending entry for token. A wrong code costs
// one attempt; the right one consumes one receipt view and retires the entry,
// so the same pair cannot be verified twice.
func (s *OtpService) Verify(ctx context.Context, token, code string) (VerifyResult, error) {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(code) == "" {
		return VerifyResult{}, ErrValidation
	}
	unlock := s.locks.Lock(token)
	defer unlock()

	res, err := s.verifyLocked(token, code)
	s.observe(ctx, res, err)
	return res, err
}

func (s *OtpService) verifyLocked(token, code string) (VerifyResult, error) {
	entry, err := s.repos.Otps.Get(token)
	if err != nil {
		return VerifyResult{}, ErrNotIssued
	}
	now := s.now()
	if entry.Expired(now) {
		return VerifyResult{}, ErrOtpExpired
	}
	if entry.AttemptsLeft <= 0 {
		return VerifyResult{}, ErrAttemptsExhausted
	}

	if !auth.CompareCode(entry.CodeHash, code) {
		left, err := s.repos.Otps.Update(token, func(e *models.OtpEntry) error {
			if e.AttemptsLeft > 0 {
				e.AttemptsLeft--
			}
			return nil
		})
		if err != nil {
			return VerifyResult{}, ErrNotIssued
		}
		return VerifyResult{}, &InvalidCodeError{AttemptsLeft: left.AttemptsLeft}
	}

	ref, err := s.repos.Tokens.Get(token)
	if err != nil {
		return VerifyResult{}, ErrInvalidToken
	}
	rc, err := s.repos.Receipts.Update(ref.ReceiptID, func(r *models.Receipt) error {
		if r.Expired(now) {
			return ErrExpired
		}
		if r.Exhausted() {
			return ErrUsageExceeded
		}
		r.Uses++
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return VerifyResult{}, ErrInvalidToken
	}
	if err != nil {
		return VerifyResult{}, err
	}
	s.repos.Otps.Delete(token)

	// mirror the consumed view onto the short link so it stops redirecting once
	// the receipt is used up
	_, _ = s.repos.ShortLinks.Update(ref.Code, func(l *models.ShortLink) error {
		l.Usage = min(rc.Uses, l.UsageMax)
		return nil
	})

	viewToken, exp, err := s.sessions.Issue(rc.ID)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("issue view session: %w", err)
	}
	return VerifyResult{ReceiptID: rc.ID, ViewToken: viewToken, ViewTokenExpires: exp}, nil
}

func (s *OtpService) observe(ctx context.Context, res VerifyResult, err error) {
	var invalid *InvalidCodeError
	result := "verified"
	switch {
	case err == nil:
	case errors.As(err, &invalid):
		result = "invalid_code"
	case errors.Is(err, ErrNotIssued):
		result = "not_issued"
	case errors.Is(err, ErrOtpExpired):
		result = "expired"
	case errors.Is(err, ErrAttemptsExhausted):
		result = "exhausted"
	default:
		result = "rejected"
	}
	metrics.OtpVerifications.WithLabelValues(result).Inc()

	if err != nil {
		slog.DebugContext(ctx, "otp verify failed", "result", result, "err", err)
		return
	}
	s.audit.Record("receipt", res.ReceiptID, "otp_verified", nil)
	slog.InfoContext(ctx, "otp verified", "receipt_id", res.ReceiptID)
}
