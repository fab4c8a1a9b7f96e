package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/parkpass/internal/domain"
)

// ErrorHandler maps domain error kinds onto HTTP statuses in one place so
// handlers can return engine errors untranslated.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := err.Error()

		var domErr *domain.Error
		if errors.As(err, &domErr) {
			code = statusForKind(domErr.Kind)
			message = domErr.Message
		} else if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		if code == fiber.StatusInternalServerError || code == fiber.StatusServiceUnavailable {
			log.Error("Request failed", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": message,
			"kind":  string(domain.KindOf(err)),
		})
	}
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound, domain.KindTokenNotFound, domain.KindSessionNotFound:
		return fiber.StatusNotFound
	case domain.KindUniqueViolation, domain.KindDuplicateSession, domain.KindInvalidTransition:
		return fiber.StatusConflict
	case domain.KindTransient:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
