package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]any{"provider", "gemini", "api_key", "abc123", "dangling"})
	require.Equal(t, []any{"provider", "gemini", "api_key", "[REDACTED]", "dangling"}, out)
}

func TestSanitizeKVsRedactsAnyKeyName(t *testing.T) {
	out := sanitizeKVs([]any{"gemini_key", "g-1", "KeyAlias", "study", "session_token", "t", "Authorization", "Bearer x", "provider", "groq"})
	require.Equal(t, []any{"gemini_key", "[REDACTED]", "KeyAlias", "[REDACTED]", "session_token", "[REDACTED]", "Authorization", "[REDACTED]", "provider", "groq"}, out)
}

func TestNopLoggerIsUsable(t *testing.T) {
	l := Nop().With("request_id", "r1")
	l.Info("hello", "k", 1)
	l.Sync()
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-42")
	require.Equal(t, "req-42", RequestID(ctx))
	require.Equal(t, "", RequestID(context.Background()))
}
