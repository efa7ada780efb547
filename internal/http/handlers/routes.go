package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Routes mounts the JSON API on app.
func Routes(app *fiber.App, d *Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	api := app.Group("/api")
	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/users/me", RequireUser(d.Auth), d.AuthHandler.Me)

	sellers := api.Group("/sellers")
	sellers.Get("/me", Authenticate(d.Auth), d.SellerHandler.Me)
	sellers.Post("/apply", RequireUser(d.Auth), d.SellerHandler.Apply)
	sellers.Post("/reapply", RequireUser(d.Auth), d.SellerHandler.Reapply)
	sellers.Get("/products", RequireUser(d.Auth), d.ProductHandler.List)
	sellers.Post("/products", RequireUser(d.Auth), d.ProductHandler.Add)

	admin := api.Group("/admin", RequireAdmin(d.Auth))
	admin.Get("/sellers", d.AdminHandler.Sellers)
	admin.Get("/sellers/pending", d.AdminHandler.Pending)
	admin.Put("/sellers/:id/approve", d.AdminHandler.Approve)
	admin.Put("/sellers/:id/reject", d.AdminHandler.Reject)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}
