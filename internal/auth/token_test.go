package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T) *TokenService {
	t.Helper()
	s, err := NewTokenService(testSecret, "HS256")
	require.NoError(t, err)
	return s
}

func signClaims(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func TestNewTokenServiceRejectsBadConfig(t *testing.T) {
	_, err := NewTokenService("", "HS256")
	assert.Error(t, err)
	_, err = NewTokenService(testSecret, "RS256")
	assert.Error(t, err)
	_, err = NewTokenService(testSecret, "bogus")
	assert.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	s := newTestService(t)
	raw, err := s.Issue("alice", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	sub, err := s.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestIssueDefaultTTL(t *testing.T) {
	s := newTestService(t)
	raw, err := s.Issue("alice", 0)
	require.NoError(t, err)

	tok, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	exp, err := tok.Claims.(jwt.MapClaims).GetExpirationTime()
	require.NoError(t, err)

	until := time.Until(exp.Time)
	assert.Greater(t, until, 14*time.Minute)
	assert.LessOrEqual(t, until, 15*time.Minute)
}

func TestVerifyExpiredToken(t *testing.T) {
	s := newTestService(t)
	raw := signClaims(t, testSecret, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Second).Unix(),
	})
	_, err := s.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyTamperedToken(t *testing.T) {
	s := newTestService(t)
	raw := signClaims(t, "another-secret-another-secret-00", jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	_, err := s.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyMalformedToken(t *testing.T) {
	s := newTestService(t)
	_, err := s.Verify("definitely.not.ajwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

// A valid signature with a missing required claim must be reported as
// a missing-claim failure, not a generic invalid-signature one.
func TestVerifyMissingSubjectClaim(t *testing.T) {
	s := newTestService(t)
	raw := signClaims(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Minute).Unix(),
	})
	_, err := s.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenMissingClaim)
}

func TestVerifyMissingExpiryClaim(t *testing.T) {
	s := newTestService(t)
	raw := signClaims(t, testSecret, jwt.MapClaims{"sub": "alice"})
	_, err := s.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenMissingClaim)
}

func TestIssueEmptySubject(t *testing.T) {
	s := newTestService(t)
	_, err := s.Issue("", time.Minute)
	assert.Error(t, err)
}
