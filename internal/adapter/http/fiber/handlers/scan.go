package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/parkpass/internal/domain"
	"github.com/seu-repo/parkpass/internal/ports"
)

type ScanHandler struct {
	service ports.ScanService
	log     *zap.Logger
}

func NewScanHandler(service ports.ScanService, log *zap.Logger) *ScanHandler {
	return &ScanHandler{
		service: service,
		log:     log,
	}
}

type ResolveScanRequest struct {
	Token string `json:"token"`
}

// Resolve takes the decoded QR string and branches on the authenticated
// user's role. The request body never carries a role; clients cannot choose
// the branch.
func (h *ScanHandler) Resolve(c *fiber.Ctx) error {
	var req ResolveScanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Token is required"})
	}

	user := c.Locals("user").(*domain.User)

	result, err := h.service.Resolve(c.Context(), req.Token, domain.ActorFromUser(user))
	if err != nil {
		return err
	}

	return c.JSON(result)
}
