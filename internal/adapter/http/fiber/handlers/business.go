package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/ports"
)

type BusinessHandler struct {
	tokens   ports.BusinessTokenService
	sessions ports.SessionService
	log      *zap.Logger
}

func NewBusinessHandler(tokens ports.BusinessTokenService, sessions ports.SessionService, log *zap.Logger) *BusinessHandler {
	return &BusinessHandler{
		tokens:   tokens,
		sessions: sessions,
		log:      log,
	}
}

// GetQRCode returns the venue's printable code, 404 until provisioned.
func (h *BusinessHandler) GetQRCode(c *fiber.Ctx) error {
	user := c.Locals("user").(*domain.User)

	bt, err := h.tokens.Get(c.Context(), user.BusinessName)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No QR code provisioned yet"})
		}
		return err
	}
	return c.JSON(bt)
}

func (h *BusinessHandler) ProvisionQRCode(c *fiber.Ctx) error {
	user := c.Locals("user").(*domain.User)

	bt, err := h.tokens.Provision(c.Context(), user.BusinessName)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(bt)
}

// GetOpenSessions lists the venue's currently open (active or validated)
// sessions.
func (h *BusinessHandler) GetOpenSessions(c *fiber.Ctx) error {
	user := c.Locals("user").(*domain.User)

	sessions, err := h.sessions.OpenForBusiness(c.Context(), user.BusinessName)
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}
