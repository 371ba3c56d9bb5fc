package models

import "time"

type ShortLink struct {
	Code      string    `json:"code"`
	Token     string    `json:"token"`
	LongURL   string    `json:"longUrl"`
	Usage     int       `json:"usage"`
	UsageMax  int       `json:"usageMax"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l ShortLink) Expired(now time.Time) bool { return !now.Before(l.ExpiresAt) }

func (l ShortLink) Exhausted() bool { return l.Usage >= l.UsageMax }
