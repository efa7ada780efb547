package repos

import (
	"context"

	"sellerhub/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, `SELECT id, name FROM categories ORDER BY id`)
	return out, err
}

func (r *CategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories WHERE id=?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}
