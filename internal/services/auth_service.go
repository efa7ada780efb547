package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sellerhub/internal/apperr"
	"sellerhub/internal/domain"
	"sellerhub/internal/identity"
	"sellerhub/internal/repos"
)

type AuthService struct {
	Verifier identity.Verifier
	Users    *repos.UserRepo
	// AutoProvision creates a buyer row the first time a verified identity is seen.
	AutoProvision bool
	Now           func() time.Time
}

func NewAuthService(v identity.Verifier, users *repos.UserRepo, autoProvision bool) *AuthService {
	return &AuthService{Verifier: v, Users: users, AutoProvision: autoProvision, Now: time.Now}
}

// Authenticate verifies the bearer token in an Authorization header value.
func (s *AuthService) Authenticate(ctx context.Context, header string) (domain.Principal, error) {
	tok, err := identity.BearerToken(header)
	switch {
	case errors.Is(err, identity.ErrMissingToken):
		return domain.Principal{}, apperr.Unauthenticated("Authorization header is required")
	case err != nil:
		return domain.Principal{}, apperr.Unauthenticated("Invalid authorization format")
	}
	p, err := s.Verifier.Verify(ctx, tok)
	if err != nil {
		e := apperr.Unauthenticated("Invalid or expired token")
		e.Err = err
		return domain.Principal{}, e
	}
	return p, nil
}

// CurrentUser maps a verified principal to its internal user row.
func (s *AuthService) CurrentUser(ctx context.Context, p domain.Principal) (*domain.User, error) {
	u, err := s.Users.ByFirebaseUID(ctx, p.UID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.Store("Failed to load user", err)
	}
	if !s.AutoProvision {
		return nil, apperr.Unauthenticated("User not registered")
	}
	u, err = s.Users.EnsureBuyer(ctx, p, stamp(s.Now))
	if err != nil {
		return nil, apperr.Store("Failed to register user", err)
	}
	return u, nil
}
