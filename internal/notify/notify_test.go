package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifierWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, n.SendSMS(context.Background(), "+15551234567", "hello"))
	out := buf.String()
	assert.Contains(t, out, "channel=sms")
	assert.Contains(t, out, "to=+15551234567")
	assert.Contains(t, out, "body=hello")
}
