package codegen

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tok, err := GenerateToken()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.NotContains(t, tok, "=")

	other, err := GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, tok, other)
}

func TestGenerateShortCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateShortCode(7)
		require.NoError(t, err)
		require.Len(t, code, 7)
		for _, c := range code {
			require.True(t, strings.ContainsRune(Alphabet, c), "unexpected %q in %s", c, code)
		}
	}
	assert.Len(t, Alphabet, 62)
}

func TestGenerateShortCodeRejectsBadLength(t *testing.T) {
	_, err := GenerateShortCode(0)
	assert.Error(t, err)
}

func TestShortCodeCoversAlphabet(t *testing.T) {
	seen := map[rune]bool{}
	for i := 0; i < 500; i++ {
		code, err := GenerateShortCode(32)
		require.NoError(t, err)
		for _, c := range code {
			seen[c] = true
		}
	}
	assert.Len(t, seen, len(Alphabet))
}

func TestGenerateOtp(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOtp()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			require.True(t, c >= '0' && c <= '9')
		}
	}
}
