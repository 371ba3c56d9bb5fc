package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskedMsisdn(t *testing.T) {
	cases := map[string]string{
		"+15551234567": "4567",
		"+٩٧١٥٠١٢٣٤٥٦": "٣٤٥٦",
		"+1555":        "1555",
		"1234":         "****",
		"12":           "**",
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Receipt{Msisdn: in}.MaskedMsisdn(), in)
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(ReceiptItem{Price: NewMoney(decimal.RequireFromString("10.50"))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sku":"","name":"","qty":0,"price":10.5}`, string(b))

	var it ReceiptItem
	require.NoError(t, json.Unmarshal([]byte(`{"price":"-5.25"}`), &it))
	assert.True(t, it.Price.Equal(decimal.RequireFromString("-5.25")))
	require.NoError(t, json.Unmarshal([]byte(`{"price":3}`), &it))
	assert.Equal(t, "3", it.Price.String())
}

func TestMoneyLeavesDecimalDefaultAlone(t *testing.T) {
	b, err := json.Marshal(decimal.RequireFromString("1.5"))
	require.NoError(t, err)
	assert.Equal(t, `"1.5"`, string(b))
}
