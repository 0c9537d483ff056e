package ws

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
)

// ErrInvalidToken is returned when JWT validation fails.
var ErrInvalidToken = errors.New("invalid token")

// ErrUserNotFound is returned when the Auth0 subject has no mapped user.
var ErrUserNotFound = errors.New("user not found")

// UserLookup maps an Auth0 subject claim to this system's user_id. Most
// deployments can satisfy this with the identity function (Auth0 subject
// used directly as user_id, since SPEC_FULL.md's Non-goals exclude
// multi-tenant isolation beyond user_id) — IdentityUserLookup does exactly that.
type UserLookup interface {
	GetUserIDByAuth0Subject(auth0Subject string) (userID string, err error)
}

// IdentityUserLookup treats the Auth0 subject claim as the user_id
// directly, skipping any persisted mapping table.
type IdentityUserLookup struct{}

func (IdentityUserLookup) GetUserIDByAuth0Subject(auth0Subject string) (string, error) {
	if auth0Subject == "" {
		return "", ErrUserNotFound
	}
	return auth0Subject, nil
}

type customClaims struct{}

func (c customClaims) Validate(ctx context.Context) error { return nil }

// Auth0JWTValidator validates Auth0-issued JWTs for WebSocket connections
// and resolves them to a user_id (§6.1's ambient HTTP-shell auth, reused
// for the push channel rather than reinvented).
type Auth0JWTValidator struct {
	validator *validator.Validator
	lookup    UserLookup
}

// NewAuth0JWTValidator builds a validator against the given Auth0
// domain/audience, resolving subjects to user IDs via lookup.
func NewAuth0JWTValidator(domain, audience string, lookup UserLookup) (*Auth0JWTValidator, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &customClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &Auth0JWTValidator{validator: jwtValidator, lookup: lookup}, nil
}

// ValidateToken validates token and returns the user_id it maps to.
func (v *Auth0JWTValidator) ValidateToken(token string) (userID string, err error) {
	claims, err := v.validator.ValidateToken(context.Background(), token)
	if err != nil {
		return "", ErrInvalidToken
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	userID, err = v.lookup.GetUserIDByAuth0Subject(validatedClaims.RegisteredClaims.Subject)
	if err != nil {
		return "", ErrUserNotFound
	}
	return userID, nil
}
