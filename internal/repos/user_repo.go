package repos

import (
	"context"
	"database/sql"
	"errors"

	"sellerhub/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, firebase_uid, email, name, role, approval_status, created_at, updated_at`

func (r *UserRepo) ByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, `SELECT `+userCols+` FROM users WHERE firebase_uid=?`, uid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureBuyer inserts a buyer row for the identity unless one already exists and
// returns the stored row. Concurrent first requests for one identity converge on one row.
func (r *UserRepo) EnsureBuyer(ctx context.Context, p domain.Principal, at string) (*domain.User, error) {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users(firebase_uid, email, name, role, approval_status, created_at, updated_at)
		VALUES(?, ?, ?, 'buyer', 'none', ?, ?)
		ON CONFLICT(firebase_uid) DO NOTHING
	`, p.UID, p.Email, p.Name, at, at)
	if err != nil {
		return nil, err
	}
	return r.ByFirebaseUID(ctx, p.UID)
}

// EnsureAdmin creates the identity as an admin, or promotes an existing row.
// It reports whether a new row was inserted.
func (r *UserRepo) EnsureAdmin(ctx context.Context, p domain.Principal, at string) (*domain.User, bool, error) {
	existing, err := r.ByFirebaseUID(ctx, p.UID)
	switch {
	case err == nil:
		if existing.Role != domain.RoleAdmin {
			if _, err := r.DB.ExecContext(ctx, `UPDATE users SET role='admin', updated_at=? WHERE id=?`, at, existing.ID); err != nil {
				return nil, false, err
			}
			existing.Role = domain.RoleAdmin
			existing.UpdatedAt = at
		}
		return existing, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, false, err
	}

	if _, err := r.DB.ExecContext(ctx, `
		INSERT INTO users(firebase_uid, email, name, role, approval_status, created_at, updated_at)
		VALUES(?, ?, ?, 'admin', 'none', ?, ?)
	`, p.UID, p.Email, p.Name, at, at); err != nil {
		return nil, false, err
	}
	u, err := r.ByFirebaseUID(ctx, p.UID)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}
