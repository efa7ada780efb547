package handlers

import (
	applog "sellerhub/internal/log"
	"sellerhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Admin *services.AdminService
}

// RejectInput is the optional body of a reject call.
type RejectInput struct {
	Reason string `json:"reason" validate:"max=1000"`
}

// GET /api/admin/sellers
func (h *AdminHandler) Sellers(c *fiber.Ctx) error {
	sellers, err := h.Admin.ListAllSellers(c.UserContext())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(sellers)
}

// GET /api/admin/sellers/pending
func (h *AdminHandler) Pending(c *fiber.Ctx) error {
	sellers, err := h.Admin.ListPending(c.UserContext())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(sellers)
}

// PUT /api/admin/sellers/:id/approve
func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	s, err := h.Admin.Approve(c.UserContext(), id)
	if err != nil {
		applog.Info(c, "admin.sellers.approve.fail", map[string]any{"seller_id": id, "err": err.Error()})
		return respondErr(c, err)
	}
	applog.Audit(c, "admin.sellers.approve", map[string]any{"seller_id": id, "user": s.UserID})
	return c.JSON(fiber.Map{"message": "Seller approved successfully", "seller": s})
}

// PUT /api/admin/sellers/:id/reject
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondErr(c, err)
	}
	var in RejectInput
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &in); err != nil {
			return respondErr(c, err)
		}
		if err := validateStruct(in); err != nil {
			return respondErr(c, err)
		}
	}
	s, err := h.Admin.Reject(c.UserContext(), id, in.Reason)
	if err != nil {
		applog.Info(c, "admin.sellers.reject.fail", map[string]any{"seller_id": id, "err": err.Error()})
		return respondErr(c, err)
	}
	applog.Audit(c, "admin.sellers.reject", map[string]any{"seller_id": id, "reason": s.RejectionReason})
	return c.JSON(fiber.Map{"message": "Seller rejected successfully", "seller": s})
}
