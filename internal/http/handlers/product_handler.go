package handlers

import (
	"sellerhub/internal/apperr"
	applog "sellerhub/internal/log"
	"sellerhub/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Products *services.ProductService
}

// GET /api/sellers/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	u := userFrom(c)
	products, err := h.Products.ListOwnProducts(c.UserContext(), u.ID)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(products)
}

// POST /api/sellers/products
func (h *ProductHandler) Add(c *fiber.Ctx) error {
	u := userFrom(c)
	// approval is checked before the body is read
	seller, err := h.Products.ApprovedSeller(c.UserContext(), u.ID)
	if err != nil {
		if apperr.Is(err, apperr.CodeForbidden) {
			applog.Security(c, "access.denied.products", map[string]any{"reason": "seller_not_approved"})
		}
		return respondErr(c, err)
	}

	var in services.ProductInput
	if err := bindJSON(c, &in); err != nil {
		return respondErr(c, err)
	}
	p, err := h.Products.AddForSeller(c.UserContext(), seller, in)
	if err != nil {
		return respondErr(c, err)
	}
	applog.Info(c, "product.add", map[string]any{"product_id": p.ID, "seller_id": seller.ID, "price": p.Price})
	return c.JSON(fiber.Map{"message": "Product added successfully", "product": p})
}
