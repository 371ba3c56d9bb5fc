// Package codegen mints the random identifiers handed out to customers:
// bearer tokens for the view page, short link codes and OTP codes.
// Everything here reads from crypto/rand.
package codegen

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// Alphabet is the character set of short link codes.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	tokenBytes = 32
	otpDigits  = 6
)

// bytes at or above this bound are rejected so every alphabet index is equally likely.
var rejectAbove = byte(256 - 256%len(Alphabet))

// GenerateToken returns 256 random bits, base64url encoded without padding.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("token entropy: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateShortCode returns length characters drawn uniformly from Alphabet.
func GenerateShortCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("short code length must be > 0, got %d", length)
	}
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("short code entropy: %w", err)
		}
		for _, b := range buf {
			if b >= rejectAbove {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

var otpMax = big.NewInt(1_000_000)

// GenerateOtp returns a zero-padded 6 digit code.
func GenerateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, otpMax)
	if err != nil {
		return "", fmt.Errorf("otp entropy: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
