package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/items-api/internal/apperr"
	"github.com/iliyamo/items-api/internal/model"
	"github.com/iliyamo/items-api/internal/repository"
)

type stubUserStore struct {
	users map[string]model.User
}

func (s *stubUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	u, ok := s.users[username]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func newTestResolver(t *testing.T) (*Resolver, *TokenService) {
	t.Helper()
	tokens := newTestService(t)
	store := &stubUserStore{users: map[string]model.User{
		"alice": {ID: 1, Username: "alice", Email: "alice@example.com", IsActive: true},
		"carol": {ID: 2, Username: "carol", Email: "carol@example.com", IsActive: false},
	}}
	return NewResolver(tokens, store), tokens
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected a taxonomy error, got %v", err)
	assert.Equal(t, code, ae.Code)
}

// Four distinct inputs must produce four distinguishable outcomes.

func TestResolveNoToken(t *testing.T) {
	r, _ := newTestResolver(t)
	_, err := r.Resolve(context.Background(), "")
	assertCode(t, err, apperr.CodeMissingCredentials)

	_, err = r.Resolve(context.Background(), "Basic dXNlcjpwYXNz")
	assertCode(t, err, apperr.CodeMissingCredentials)

	_, err = r.Resolve(context.Background(), "Bearer ")
	assertCode(t, err, apperr.CodeMissingCredentials)
}

func TestResolveTamperedToken(t *testing.T) {
	r, _ := newTestResolver(t)
	_, err := r.Resolve(context.Background(), "Bearer not.a.token")
	assertCode(t, err, apperr.CodeInvalidCredentials)
}

func TestResolveUnknownSubject(t *testing.T) {
	r, tokens := newTestResolver(t)
	raw, err := tokens.Issue("ghost", time.Minute)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "Bearer "+raw)
	assertCode(t, err, apperr.CodeUserNotFound)
}

func TestResolveInactiveAccount(t *testing.T) {
	r, tokens := newTestResolver(t)
	raw, err := tokens.Issue("carol", time.Minute)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "Bearer "+raw)
	assertCode(t, err, apperr.CodeInactiveUser)
}

func TestResolveSuccess(t *testing.T) {
	r, tokens := newTestResolver(t)
	raw, err := tokens.Issue("alice", time.Minute)
	require.NoError(t, err)

	u, err := r.Resolve(context.Background(), "Bearer "+raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), u.ID)
	assert.Equal(t, "alice", u.Username)
}

func TestResolveMissingClaimMapsToInvalidCredentials(t *testing.T) {
	r, _ := newTestResolver(t)
	raw := signClaims(t, testSecret, jwt.MapClaims{"sub": "alice"})
	_, err := r.Resolve(context.Background(), "Bearer "+raw)
	assertCode(t, err, apperr.CodeInvalidCredentials)
}
