package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

type ReceiptItem struct {
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price Money  `json:"price"`
}

type Receipt struct {
	ID        string        `json:"receiptId"`
	TxnID     string        `json:"txnId"`
	Msisdn    string        `json:"msisdn"`
	Amount    Money         `json:"amount"`
	Currency  string        `json:"currency"`
	Items     []ReceiptItem `json:"items"`
	ExpiresAt time.Time     `json:"expiresAt"`
	MaxUses   int           `json:"maxUses"`
	Uses      int           `json:"uses"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (r Receipt) Expired(now time.Time) bool { return !now.Before(r.ExpiresAt) }

func (r Receipt) Exhausted() bool { return r.Uses >= r.MaxUses }

// MaskedMsisdn keeps the last four characters only, for pages shown before
// OTP. Numbers that short are masked entirely.
func (r Receipt) MaskedMsisdn() string {
	n := utf8.RuneCountInString(r.Msisdn)
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	runes := []rune(r.Msisdn)
	return string(runes[n-4:])
}

// TokenRef is what a bearer token resolves to.
type TokenRef struct {
	ReceiptID string
	Code      string
}
