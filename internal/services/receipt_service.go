package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/ereceipt-backend/internal/api/validate"
	"github.com/baharkarakas/ereceipt-backend/internal/codegen"
	"github.com/baharkarakas/ereceipt-backend/internal/config"
	"github.com/baharkarakas/ereceipt-backend/internal/metrics"
	"github.com/baharkarakas/ereceipt-backend/internal/models"
	"github.com/baharkarakas/ereceipt-backend/internal/notify"
	repo "github.com/baharkarakas/ereceipt-backend/internal/repository"
	"github.com/baharkarakas/ereceipt-backend/internal/worker"
)

const (
	defaultCurrency = "USD"
	codeAttempts    = 5
)

type ReceiptService struct {
	repos    repo.Repositories
	cfg      config.Config
	notifier notify.Notifier
	wp       *worker.Pool
	audit    *Auditor
	now      func() time.Time
}

func NewReceiptService(r repo.Repositories, cfg config.Config, n notify.Notifier, wp *worker.Pool, a *Auditor) *ReceiptService {
	return &ReceiptService{repos: r, cfg: cfg, notifier: n, wp: wp, audit: a, now: time.Now}
}

type IssueInput struct {
	TxnID    string
	Msisdn   string
	Amount   decimal.Decimal
	Currency string
	Items    []models.ReceiptItem
}

type IssueResult struct {
	ReceiptID string    `json:"receiptId"`
	Token     string    `json:"token"`
	LongURL   string    `json:"longUrl"`
	ShortURL  string    `json:"shortUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Issue mints a receipt, its bearer token and the short link pointing at the
// view page, then texts the short link to the customer. Re-issuing for the
// same transaction creates an independent receipt. Only txnId and msisdn are
// checked; amount, currency and items are stored as sent.
func (s *ReceiptService) Issue(ctx context.Context, in IssueInput) (IssueResult, error) {
	in.TxnID = strings.TrimSpace(in.TxnID)
	in.Msisdn = strings.TrimSpace(in.Msisdn)
	in.Currency = strings.TrimSpace(in.Currency)
	if in.Currency == "" {
		in.Currency = defaultCurrency
	}

	if errs := validate.Collect(
		validate.Required("txnId", in.TxnID),
		validate.Required("msisdn", in.Msisdn),
	); errs != nil {
		return IssueResult{}, fmt.Errorf("%w: %w", ErrValidation, errs)
	}
	if !validate.IsISOCurrency(in.Currency) {
		slog.DebugContext(ctx, "receipt currency is not ISO 4217", "currency", in.Currency, "txn_id", in.TxnID)
	}

	token, err := codegen.GenerateToken()
	if err != nil {
		return IssueResult{}, err
	}
	longURL, err := s.longURL(token)
	if err != nil {
		return IssueResult{}, err
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.cfg.DefaultTTL())
	items := in.Items
	if items == nil {
		items = []models.ReceiptItem{}
	}
	rc := models.Receipt{
		ID:        strings.ReplaceAll(uuid.NewString(), "-", ""),
		TxnID:     in.TxnID,
		Msisdn:    in.Msisdn,
		Amount:    models.NewMoney(in.Amount),
		Currency:  in.Currency,
		Items:     items,
		ExpiresAt: expiresAt,
		MaxUses:   s.cfg.DefaultUsageMax,
		CreatedAt: now,
	}
	if err := s.repos.Receipts.Create(rc); err != nil {
		return IssueResult{}, fmt.Errorf("store receipt: %w", err)
	}

	link := models.ShortLink{
		Token:     token,
		LongURL:   longURL,
		UsageMax:  rc.MaxUses,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
	if link.Code, err = s.createLink(link); err != nil {
		s.repos.Receipts.Delete(rc.ID)
		return IssueResult{}, err
	}
	if err := s.repos.Tokens.Create(token, models.TokenRef{ReceiptID: rc.ID, Code: link.Code}); err != nil {
		s.repos.ShortLinks.Delete(link.Code)
		s.repos.Receipts.Delete(rc.ID)
		return IssueResult{}, fmt.Errorf("store token: %w", err)
	}

	shortURL := strings.TrimRight(s.cfg.ShortBaseURL, "/") + "/s/" + link.Code
	s.sendSMS(rc.Msisdn, "Your e-receipt for "+rc.TxnID+" is ready: "+shortURL)

	metrics.ReceiptsIssued.Inc()
	s.audit.Record("receipt", rc.ID, "issued", map[string]any{"txn_id": rc.TxnID, "code": link.Code})
	slog.InfoContext(ctx, "receipt issued", "receipt_id", rc.ID, "txn_id", rc.TxnID, "code", link.Code)

	return IssueResult{
		ReceiptID: rc.ID,
		Token:     token,
		LongURL:   longURL,
		ShortURL:  shortURL,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *ReceiptService) longURL(token string) (string, error) {
	u, err := url.Parse(s.cfg.ViewBaseURL)
	if err != nil {
		return "", fmt.Errorf("view base url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// createLink retries on the rare code collision.
func (s *ReceiptService) createLink(link models.ShortLink) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := codegen.GenerateShortCode(s.cfg.CodeLength)
		if err != nil {
			return "", err
		}
		link.Code = code
		err = s.repos.ShortLinks.Create(link)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, repo.ErrConflict) {
			return "", fmt.Errorf("store short link: %w", err)
		}
	}
	return "", fmt.Errorf("no free short code after %d attempts", codeAttempts)
}

func (s *ReceiptService) sendSMS(msisdn, body string) {
	s.wp.Submit(func() {
		if err := s.notifier.SendSMS(context.Background(), msisdn, body); err != nil {
			slog.Error("sms delivery", "to", msisdn, "err", err)
		}
	})
}

func (s *ReceiptService) Get(id string) (models.Receipt, error) {
	rc, err := s.repos.Receipts.Get(id)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Receipt{}, ErrNotFound
	}
	return rc, err
}

// ResolveView checks that token may still open the OTP page.
func (s *ReceiptService) ResolveView(token string) (models.Receipt, error) {
	if strings.TrimSpace(token) == "" {
		return models.Receipt{}, ErrValidation
	}
	ref, err := s.repos.Tokens.Get(token)
	if err != nil {
		return models.Receipt{}, ErrInvalidToken
	}
	rc, err := s.repos.Receipts.Get(ref.ReceiptID)
	if err != nil {
		return models.Receipt{}, ErrInvalidToken
	}
	if rc.Expired(s.now()) {
		return models.Receipt{}, ErrExpired
	}
	if rc.Exhausted() {
		return models.Receipt{}, ErrUsageExceeded
	}
	return rc, nil
}

// Resolve maps a short code to its long URL. It does not consume a use; uses
// are consumed by OTP verification and mirrored onto the link.
func (s *ReceiptService) Resolve(ctx context.Context, code string) (string, error) {
	link, err := s.repos.ShortLinks.Get(code)
	switch {
	case err != nil:
		metrics.Redirects.WithLabelValues("not_found").Inc()
		return "", ErrNotFound
	case link.Expired(s.now()):
		metrics.Redirects.WithLabelValues("expired").Inc()
		return "", ErrExpired
	case link.Exhausted():
		metrics.Redirects.WithLabelValues("exhausted").Inc()
		return "", ErrUsageExceeded
	}
	metrics.Redirects.WithLabelValues("redirected").Inc()
	s.audit.Record("short_link", code, "redirected", nil)
	slog.DebugContext(ctx, "short link resolved", "code", code)
	return link.LongURL, nil
}
