package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSensitiveKey(t *testing.T) {
	sensitive := []string{
		"password", "Password", "user_password", "passwd",
		"token", "access_token", "jwt", "bearer",
		"secret", "SECRET_KEY", "api_key", "apiKey",
		"Authorization", "auth", "x-auth-header",
		"credit_card", "credit-card", "creditCard", "ssn", "cvv",
	}
	for _, k := range sensitive {
		assert.True(t, SensitiveKey(k), "expected %q to be sensitive", k)
	}
	for _, k := range []string{"username", "email", "title", "id", "is_active"} {
		assert.False(t, SensitiveKey(k), "expected %q to be plain", k)
	}
}

func TestRedactNestedStructures(t *testing.T) {
	in := map[string]any{
		"username": "alice",
		"password": "secret123",
		"profile": map[string]any{
			"email":         "alice@example.com",
			"Authorization": "Bearer abc",
			"cards": []any{
				map[string]any{"api_key": "k-123", "label": "main"},
			},
		},
	}

	out, ok := Redact(in).(map[string]any)
	assert.True(t, ok)

	assert.Equal(t, "alice", out["username"])
	assert.Equal(t, RedactedMarker, out["password"])

	profile := out["profile"].(map[string]any)
	assert.Equal(t, "alice@example.com", profile["email"])
	assert.Equal(t, RedactedMarker, profile["Authorization"])

	card := profile["cards"].([]any)[0].(map[string]any)
	assert.Equal(t, RedactedMarker, card["api_key"])
	assert.Equal(t, "main", card["label"])

	// Input must not be mutated.
	assert.Equal(t, "secret123", in["password"])
	assert.Equal(t, "Bearer abc", in["profile"].(map[string]any)["Authorization"])
}

func TestRedactScalars(t *testing.T) {
	assert.Equal(t, "plain", Redact("plain"))
	assert.Equal(t, 42.0, Redact(42.0))
	assert.Nil(t, Redact(nil))
}
