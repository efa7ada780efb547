// Package identity turns bearer tokens into verified principals.
package identity

import (
	"context"
	"errors"
	"strings"

	"sellerhub/internal/domain"
)

var (
	ErrMissingToken = errors.New("authorization header is required")
	ErrBadFormat    = errors.New("invalid authorization format")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Verifier validates an identity token issued by the identity provider.
type Verifier interface {
	Verify(ctx context.Context, token string) (domain.Principal, error)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrBadFormat
	}
	return parts[1], nil
}
