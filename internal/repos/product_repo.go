package repos

import (
	"context"

	"sellerhub/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, description, price, original_price, category_id, seller_id, image, brand,
  is_active, created_at`

func (r *ProductRepo) ListBySeller(ctx context.Context, sellerID int64) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+productCols+`
		FROM products
		WHERE seller_id = ?
		ORDER BY id
	`, sellerID)
	return out, err
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// Create inserts p and fills in its id.
func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO products(name, description, price, original_price, category_id, seller_id, image, brand,
		  is_active, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Name, p.Description, p.Price, p.OriginalPrice, p.CategoryID, p.SellerID, p.Image, p.Brand,
		p.IsActive, p.CreatedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}
