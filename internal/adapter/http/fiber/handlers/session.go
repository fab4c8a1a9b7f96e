package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/ports"
)

type SessionHandler struct {
	service ports.SessionService
	log     *zap.Logger
}

func NewSessionHandler(service ports.SessionService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log,
	}
}

func (h *SessionHandler) GetOpen(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	session, err := h.service.GetOpenSession(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No open parking session"})
		}
		return err
	}
	return c.JSON(session)
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	session, err := h.service.GetSession(c.Context(), id)
	if err != nil {
		return err
	}
	if session.CustomerID != c.Locals("user_id").(string) &&
		session.BusinessName != c.Locals("user").(*domain.User).BusinessName {
		// Not the owner and not the venue; indistinguishable from absent.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no matching parking session"})
	}
	return c.JSON(session)
}

func (h *SessionHandler) GetHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	sessions, err := h.service.History(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}

// Complete confirms exit. Only the owning customer may complete a session.
func (h *SessionHandler) Complete(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Locals("user_id").(string)

	session, err := h.service.GetSession(c.Context(), id)
	if err != nil {
		return err
	}
	if session.CustomerID != userID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no matching parking session"})
	}

	completed, err := h.service.Complete(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(completed)
}
