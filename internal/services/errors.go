package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpired           = errors.New("expired")
	ErrUsageExceeded     = errors.New("usage limit exceeded")
	ErrNotIssued         = errors.New("otp not issued")
	ErrOtpExpired        = errors.New("otp expired")
	ErrAttemptsExhausted = errors.New("too many attempts")
)

// InvalidCodeError is a wrong OTP guess; the entry stays pending with
// AttemptsLeft tries.
type InvalidCodeError struct {
	AttemptsLeft int
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid code, %d attempts left", e.AttemptsLeft)
}
