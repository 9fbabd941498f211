package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the fixed fallback lifetime used when Issue is called
// without an explicit ttl. It is intentionally distinct from the
// configurable login TTL the handlers pass in.
const DefaultTTL = 15 * time.Minute

var (
	// ErrTokenInvalid covers bad signatures, malformed structure and
	// expired tokens.
	ErrTokenInvalid = errors.New("token is invalid or expired")
	// ErrTokenMissingClaim is returned when the signature checks out
	// but a required claim (sub, exp) is absent.
	ErrTokenMissingClaim = errors.New("token is missing a required claim")
)

// TokenService issues and verifies signed, self-contained access
// tokens. The signing secret and algorithm are fixed at construction
// for the process lifetime; verification needs no shared mutable state,
// which is what makes the tokens stateless (and non-revocable before
// expiry).
type TokenService struct {
	secret     []byte
	method     jwt.SigningMethod
	defaultTTL time.Duration
}

// NewTokenService builds a TokenService from the configured secret and
// algorithm name (HS256 family only).
func NewTokenService(secret, algorithm string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: empty signing secret")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token service: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token service: algorithm %q is not symmetric", algorithm)
	}
	return &TokenService{secret: []byte(secret), method: method, defaultTTL: DefaultTTL}, nil
}

// Issue signs a token for subject expiring at now+ttl. A non-positive
// ttl falls back to DefaultTTL. Claims: sub, exp, iat.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token service: empty subject")
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Verify decodes the token, checks the signature and then requires both
// the exp and sub claims before returning the subject. A valid
// signature with a missing claim is ErrTokenMissingClaim, everything
// else is ErrTokenInvalid.
func (s *TokenService) Verify(raw string) (string, error) {
	tok, err := jwt.Parse(raw,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenRequiredClaimMissing) {
			return "", ErrTokenMissingClaim
		}
		return "", ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrTokenMissingClaim
	}
	return sub, nil
}
