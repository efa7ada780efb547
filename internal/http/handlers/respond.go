package handlers

import (
	"errors"

	"sellerhub/internal/apperr"
	applog "sellerhub/internal/log"
	"sellerhub/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const msgSomethingWrong = "Something went wrong. Please try again."

// respondErr writes err as {"error", "code"}. Store and internal causes are logged,
// never returned.
func respondErr(c *fiber.Ctx, err error) error {
	ae, ok := apperr.As(err)
	if !ok {
		ae = apperr.Internal(msgSomethingWrong, err)
	}
	if ae.Status >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", ae.Err, map[string]any{"code": ae.Code, "message": ae.Message})
	}
	return c.Status(ae.Status).JSON(fiber.Map{"error": ae.Message, "code": ae.Code})
}

// ErrorHandler renders errors that escape handlers (fiber routing errors, body limits,
// panics caught by recover) in the API error shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return respondErr(c, err)
	}
	switch {
	case fe.Code == fiber.StatusNotFound:
		return respondErr(c, apperr.NotFound("Route not found"))
	case fe.Code == fiber.StatusUnauthorized:
		return respondErr(c, apperr.Unauthenticated(fe.Message))
	case fe.Code == fiber.StatusForbidden:
		return respondErr(c, apperr.Forbidden(fe.Message))
	case fe.Code == fiber.StatusTooManyRequests:
		return respondErr(c, apperr.RateLimited("Too many requests. Please try again later."))
	case fe.Code >= fiber.StatusInternalServerError:
		return respondErr(c, apperr.Internal(msgSomethingWrong, err))
	default:
		return respondErr(c, apperr.New(apperr.CodeValidation, fe.Message, fe.Code, nil))
	}
}

// bindJSON decodes the request body into dst.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"reason": "malformed_body"})
		return apperr.Validation("Invalid input data")
	}
	return nil
}

func validateStruct(in any) error {
	if err := validate.Struct(in); err != nil {
		return apperr.Validation(validate.Message(err))
	}
	return nil
}

// pathID reads a positive integer path parameter.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, ok := validate.ID(c.Params(name))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": name})
		return 0, apperr.Validation("Invalid " + name)
	}
	return id, nil
}
