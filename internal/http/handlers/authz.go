package handlers

import (
	"sellerhub/internal/apperr"
	"sellerhub/internal/domain"
	applog "sellerhub/internal/log"
	"sellerhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	principalLocal = "principal"
	userLocal      = "user"
)

// Authenticate requires a valid bearer token and stores the principal in Locals.
// It does not touch the users table.
func Authenticate(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := authenticate(c, auth); err != nil {
			return respondErr(c, err)
		}
		return c.Next()
	}
}

// RequireUser resolves the principal to its user row.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := requireUser(c, auth); err != nil {
			return respondErr(c, err)
		}
		return c.Next()
	}
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := requireUser(c, auth)
		if err != nil {
			return respondErr(c, err)
		}
		if !u.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"role": u.Role})
			return respondErr(c, apperr.Forbidden("Admin access required"))
		}
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, auth *services.AuthService) (domain.Principal, error) {
	p, err := auth.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		reason := "invalid_token"
		if ae, ok := apperr.As(err); ok {
			reason = ae.Message
		}
		applog.Security(c, "auth.token.reject", map[string]any{"reason": reason})
		return domain.Principal{}, err
	}
	c.Locals(principalLocal, p)
	return p, nil
}

func requireUser(c *fiber.Ctx, auth *services.AuthService) (*domain.User, error) {
	p, err := authenticate(c, auth)
	if err != nil {
		return nil, err
	}
	u, err := auth.CurrentUser(c.UserContext(), p)
	if err != nil {
		if apperr.Is(err, apperr.CodeUnauthenticated) {
			applog.Security(c, "auth.user.unknown", map[string]any{"uid": p.UID})
		}
		return nil, err
	}
	c.Locals(userLocal, u)
	c.Locals(applog.UserIDLocal, u.ID)
	return u, nil
}

func principalFrom(c *fiber.Ctx) domain.Principal {
	p, _ := c.Locals(principalLocal).(domain.Principal)
	return p
}

func userFrom(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals(userLocal).(*domain.User)
	return u
}
