package validate

import (
	"strings"

	"golang.org/x/text/currency"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string {
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// OnlyMissing reports whether every failure is a missing required field.
func (e Errs) OnlyMissing() bool {
	for _, ef := range e {
		if ef.Msg != msgRequired {
			return false
		}
	}
	return true
}

// Collect drops the nil results of the helpers below; nil means valid.
func Collect(fields ...*ErrField) Errs {
	var out Errs
	for _, f := range fields {
		if f != nil {
			out = append(out, *f)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

const msgRequired = "required"

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: msgRequired}
	}
	return nil
}

// IsISOCurrency reports whether code is an ISO 4217 currency in any letter
// case. Receipts may carry other units, so callers never reject on it.
func IsISOCurrency(code string) bool {
	_, err := currency.ParseISO(strings.ToUpper(code))
	return err == nil
}
