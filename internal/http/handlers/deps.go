package handlers

import (
	"sellerhub/internal/repos"
	"sellerhub/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler     *AuthHandler
	CategoryHandler *CategoryHandler
	SellerHandler   *SellerHandler
	ProductHandler  *ProductHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	userRepo := auth.Users
	sellerRepo := repos.NewSellerRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)

	return &Deps{
		Auth:            auth,
		AuthHandler:     &AuthHandler{},
		CategoryHandler: &CategoryHandler{Catalog: services.NewCatalogService(catRepo)},
		SellerHandler:   &SellerHandler{Sellers: services.NewSellerService(userRepo, sellerRepo)},
		ProductHandler:  &ProductHandler{Products: services.NewProductService(sellerRepo, prodRepo, catRepo)},
		AdminHandler:    &AdminHandler{Admin: services.NewAdminService(sellerRepo)},
	}
}
