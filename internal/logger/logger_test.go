package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProdLogsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("prod", &buf)
	log.Debug("hidden")
	log.Info("shown", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "v", rec["k"])
	assert.Equal(t, "ereceipt", rec["service"])
}

func TestDevLogsTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("dev", &buf).Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "level=DEBUG")
}
