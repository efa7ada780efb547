package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"sellerhub/internal/apperr"
	"sellerhub/internal/domain"
	"sellerhub/internal/repos"
	"sellerhub/internal/validate"
)

// ProductInput is the request body for adding a product.
type ProductInput struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Description   string           `json:"description" validate:"max=5000"`
	Price         validate.Amount  `json:"price" validate:"required,amount"`
	OriginalPrice *validate.Amount `json:"originalPrice" validate:"omitempty,amount"`
	CategoryID    int64            `json:"categoryId" validate:"required,gt=0"`
	Image         string           `json:"image" validate:"max=2048"`
	Brand         string           `json:"brand" validate:"max=120"`
}

const msgNotApproved = "Seller not approved"

type ProductService struct {
	Sellers  *repos.SellerRepo
	Products *repos.ProductRepo
	Cats     *repos.CategoryRepo
	Now      func() time.Time
}

func NewProductService(sellers *repos.SellerRepo, products *repos.ProductRepo, cats *repos.CategoryRepo) *ProductService {
	return &ProductService{Sellers: sellers, Products: products, Cats: cats, Now: time.Now}
}

// ApprovedSeller is the gate in front of every catalog operation: the user must own a
// seller row in the approved state.
func (s *ProductService) ApprovedSeller(ctx context.Context, userID int64) (domain.Seller, error) {
	seller, err := s.Sellers.ByUserID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Seller{}, apperr.Forbidden(msgNotApproved)
	} else if err != nil {
		return domain.Seller{}, apperr.Store("Failed to verify seller", err)
	}
	if !seller.Approved() {
		return domain.Seller{}, apperr.Forbidden(msgNotApproved)
	}
	return seller, nil
}

func (s *ProductService) ListOwnProducts(ctx context.Context, userID int64) ([]domain.Product, error) {
	seller, err := s.ApprovedSeller(ctx, userID)
	if err != nil {
		return nil, err
	}
	products, err := s.Products.ListBySeller(ctx, seller.ID)
	if err != nil {
		return nil, apperr.Store("Failed to fetch products", err)
	}
	return products, nil
}

// AddProduct checks approval before looking at the input, so an unapproved seller is
// refused even when the payload is invalid.
func (s *ProductService) AddProduct(ctx context.Context, userID int64, in ProductInput) (domain.Product, error) {
	seller, err := s.ApprovedSeller(ctx, userID)
	if err != nil {
		return domain.Product{}, err
	}
	return s.AddForSeller(ctx, seller, in)
}

// AddForSeller validates in and stores it under an already approved seller.
func (s *ProductService) AddForSeller(ctx context.Context, seller domain.Seller, in ProductInput) (domain.Product, error) {
	if !seller.Approved() {
		return domain.Product{}, apperr.Forbidden(msgNotApproved)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Image = strings.TrimSpace(in.Image)
	// an empty originalPrice means none; omitempty only skips a nil pointer
	if in.OriginalPrice != nil && strings.TrimSpace(string(*in.OriginalPrice)) == "" {
		in.OriginalPrice = nil
	}
	if err := validate.Struct(in); err != nil {
		return domain.Product{}, apperr.Validation(validate.Message(err))
	}
	price, _ := validate.Decimal(string(in.Price))
	var original *string
	if in.OriginalPrice != nil {
		op, _ := validate.Decimal(string(*in.OriginalPrice))
		original = &op
	}

	ok, err := s.Cats.Exists(ctx, in.CategoryID)
	if err != nil {
		return domain.Product{}, apperr.Store("Failed to add product", err)
	}
	if !ok {
		return domain.Product{}, apperr.Validation("categoryId does not reference an existing category")
	}

	image := in.Image
	if image == "" {
		image = domain.PlaceholderImage
	}
	p := domain.Product{
		Name:          in.Name,
		Description:   strings.TrimSpace(in.Description),
		Price:         price,
		OriginalPrice: original,
		CategoryID:    in.CategoryID,
		SellerID:      seller.ID,
		Image:         image,
		Brand:         strings.TrimSpace(in.Brand),
		IsActive:      true,
		CreatedAt:     stamp(s.Now),
	}
	if err := s.Products.Create(ctx, &p); err != nil {
		return domain.Product{}, apperr.Store("Failed to add product", err)
	}
	stored, err := s.Products.Get(ctx, p.ID)
	if err != nil {
		return domain.Product{}, apperr.Store("Failed to add product", err)
	}
	return stored, nil
}
