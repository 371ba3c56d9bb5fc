package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const viewSessionType = "view"

var ErrInvalidSession = errors.New("invalid view session")

// SessionManager signs the short-lived view sessions handed out after a
// successful OTP verification. A session grants read access to one receipt.
type SessionManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret, issuer string, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

type Claims struct {
	ReceiptID string `json:"rid"`
	Type      string `json:"typ"`
	jwt.RegisteredClaims
}

func (sm *SessionManager) Issue(receiptID string) (string, time.Time, error) {
	now := sm.now()
	exp := now.Add(sm.ttl)
	claims := Claims{
		ReceiptID: receiptID,
		Type:      viewSessionType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sm.issuer,
			Subject:   receiptID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// Parse validates signature, issuer and expiry and returns the receipt id the
// session is bound to.
func (sm *SessionManager) Parse(tokenStr string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return sm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sm.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(sm.now),
	)
	if err != nil || claims.Type != viewSessionType || claims.ReceiptID == "" {
		return "", ErrInvalidSession
	}
	return claims.ReceiptID, nil
}
