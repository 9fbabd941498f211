package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/items-api/internal/apperr"
	"github.com/iliyamo/items-api/internal/model"
	"github.com/iliyamo/items-api/internal/repository"
)

// UserStore is the resolver's view of the user store. Absence is
// reported as repository.ErrUserNotFound.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

// Resolver turns an inbound Authorization header into the request's
// authenticated principal. Each step fails with a distinct taxonomy
// kind so clients can tell "no credential supplied" from "credential
// invalid" from "account disabled". The principal is looked up fresh on
// every request, never cached.
type Resolver struct {
	tokens *TokenService
	users  UserStore
}

func NewResolver(tokens *TokenService, users UserStore) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve walks: header present -> token verifies -> subject resolves
// -> account active. Terminal failures, in order: MissingCredentials,
// InvalidCredentials, UserNotFound, InactiveUser.
func (r *Resolver) Resolve(ctx context.Context, authorization string) (model.User, error) {
	if !strings.HasPrefix(authorization, "Bearer ") {
		return model.User{}, apperr.MissingCredentials()
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
	if raw == "" {
		return model.User{}, apperr.MissingCredentials()
	}

	subject, err := r.tokens.Verify(raw)
	if err != nil {
		// Both bad-signature and missing-claim verdicts collapse to
		// one wire-level kind; the distinction stays server-side.
		return model.User{}, apperr.InvalidCredentials()
	}

	u, err := r.users.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, apperr.UserNotFound()
		}
		return model.User{}, err
	}
	if !u.IsActive {
		return model.User{}, apperr.InactiveUser()
	}
	return u, nil
}
