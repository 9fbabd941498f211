package logging

import "strings"

// RedactedMarker replaces the value of any field whose key looks
// sensitive before the field is logged.
const RedactedMarker = "[REDACTED]"

// sensitiveFragments is the key-name heuristic. A key matches when its
// lowercased, separator-normalized form contains any fragment. The list
// is deliberately broad; over-redacting a diagnostic log is cheap,
// leaking a credential is not.
var sensitiveFragments = []string{
	"password",
	"passwd",
	"token",
	"secret",
	"key",
	"auth",
	"jwt",
	"bearer",
	"creditcard",
	"ssn",
	"cvv",
}

// SensitiveKey reports whether a field name matches the redaction
// heuristic.
func SensitiveKey(key string) bool {
	k := strings.ToLower(key)
	k = strings.ReplaceAll(k, "-", "")
	k = strings.ReplaceAll(k, "_", "")
	for _, frag := range sensitiveFragments {
		if strings.Contains(k, frag) {
			return true
		}
	}
	return false
}

// Redact walks a decoded JSON value and returns a copy with every
// sensitive field replaced by RedactedMarker, recursively through
// nested objects and arrays. Non-sensitive siblings are untouched. The
// input is never mutated.
func Redact(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if SensitiveKey(k) {
				out[k] = RedactedMarker
				continue
			}
			out[k] = Redact(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Redact(val)
		}
		return out
	default:
		return v
	}
}
