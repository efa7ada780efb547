package handlers

import (
	applog "sellerhub/internal/log"
	"sellerhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

type SellerHandler struct {
	Sellers *services.SellerService
}

// POST /api/sellers/apply
func (h *SellerHandler) Apply(c *fiber.Ctx) error {
	var in services.ApplyInput
	if err := bindJSON(c, &in); err != nil {
		return respondErr(c, err)
	}
	s, err := h.Sellers.Apply(c.UserContext(), userFrom(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	applog.Audit(c, "seller.apply", map[string]any{"seller_id": s.ID, "store": s.StoreName})
	return c.JSON(fiber.Map{"message": "Seller application submitted successfully", "seller": s})
}

// POST /api/sellers/reapply
func (h *SellerHandler) Reapply(c *fiber.Ctx) error {
	var in services.ApplyInput
	if err := bindJSON(c, &in); err != nil {
		return respondErr(c, err)
	}
	s, err := h.Sellers.Reapply(c.UserContext(), userFrom(c), in)
	if err != nil {
		return respondErr(c, err)
	}
	applog.Audit(c, "seller.reapply", map[string]any{"seller_id": s.ID})
	return c.JSON(fiber.Map{"message": "Seller application resubmitted successfully", "seller": s})
}

// GET /api/sellers/me
func (h *SellerHandler) Me(c *fiber.Ctx) error {
	s, err := h.Sellers.OwnProfile(c.UserContext(), principalFrom(c))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(s)
}
