package repos

import (
	"context"
	"errors"
	"fmt"

	"sellerhub/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ErrDuplicate is returned when a seller row already exists for the user.
var ErrDuplicate = errors.New("seller application already exists")

type SellerRepo struct{ db *sqlx.DB }

func NewSellerRepo(db *sqlx.DB) *SellerRepo { return &SellerRepo{db: db} }

const sellerCols = `id, user_id, firebase_uid, email, name, store_name, store_description, gst_number,
  address, phone_number, approval_status, rejection_reason, created_at, updated_at`

// Decision is an approval state change applied by Decide.
type Decision struct {
	Status string
	Reason string
	At     string
}

func (r *SellerRepo) ByID(ctx context.Context, id int64) (domain.Seller, error) {
	var s domain.Seller
	err := r.db.GetContext(ctx, &s, `SELECT `+sellerCols+` FROM sellers WHERE id=?`, id)
	return s, err
}

func (r *SellerRepo) ByUserID(ctx context.Context, userID int64) (domain.Seller, error) {
	var s domain.Seller
	err := r.db.GetContext(ctx, &s, `SELECT `+sellerCols+` FROM sellers WHERE user_id=?`, userID)
	return s, err
}

// Create inserts a seller application. The unique index on user_id turns a racing
// second insert into ErrDuplicate.
func (r *SellerRepo) Create(ctx context.Context, s *domain.Seller) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sellers(user_id, firebase_uid, email, name, store_name, store_description, gst_number,
		  address, phone_number, approval_status, rejection_reason, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, '', ?, ?)
	`, s.UserID, s.FirebaseUID, s.Email, s.Name, s.StoreName, s.StoreDescription, s.GSTNumber,
		s.Address, s.PhoneNumber, s.ApprovalStatus, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// ListAll returns every application, oldest first.
func (r *SellerRepo) ListAll(ctx context.Context) ([]domain.Seller, error) {
	out := []domain.Seller{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+sellerCols+` FROM sellers ORDER BY created_at ASC, id ASC`)
	return out, err
}

func (r *SellerRepo) ListByStatus(ctx context.Context, status string) ([]domain.Seller, error) {
	out := []domain.Seller{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT `+sellerCols+` FROM sellers
		WHERE approval_status=?
		ORDER BY created_at ASC, id ASC
	`, status)
	return out, err
}

// Decide moves a seller to d.Status inside one transaction. Approving also promotes the
// owning user to the seller role; if that write fails the seller update is rolled back.
// Returns sql.ErrNoRows for an unknown id and domain.ErrInvalidTransition for a
// disallowed or concurrently changed state.
func (r *SellerRepo) Decide(ctx context.Context, id int64, d Decision) (domain.Seller, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Seller{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var cur domain.Seller
	if err := tx.GetContext(ctx, &cur, `SELECT `+sellerCols+` FROM sellers WHERE id=?`, id); err != nil {
		return domain.Seller{}, err
	}
	if err := domain.CheckTransition(cur.ApprovalStatus, d.Status); err != nil {
		return domain.Seller{}, err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE sellers SET approval_status=?, rejection_reason=?, updated_at=?
		WHERE id=? AND approval_status=?
	`, d.Status, d.Reason, d.At, id, cur.ApprovalStatus)
	if err != nil {
		return domain.Seller{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return domain.Seller{}, err
	} else if n == 0 {
		return domain.Seller{}, fmt.Errorf("%w: seller %d changed concurrently", domain.ErrInvalidTransition, id)
	}

	if d.Status == domain.StatusApproved {
		if _, err := tx.ExecContext(ctx, `
			UPDATE users SET role='seller', approval_status='approved', updated_at=?
			WHERE id=?
		`, d.At, cur.UserID); err != nil {
			return domain.Seller{}, err
		}
	}

	var out domain.Seller
	if err := tx.GetContext(ctx, &out, `SELECT `+sellerCols+` FROM sellers WHERE id=?`, id); err != nil {
		return domain.Seller{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Seller{}, err
	}
	return out, nil
}

// Resubmit resets a rejected application to pending with a fresh store profile.
func (r *SellerRepo) Resubmit(ctx context.Context, userID int64, p domain.StoreProfile, at string) (domain.Seller, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Seller{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var cur domain.Seller
	if err := tx.GetContext(ctx, &cur, `SELECT `+sellerCols+` FROM sellers WHERE user_id=?`, userID); err != nil {
		return domain.Seller{}, err
	}
	if err := domain.CheckTransition(cur.ApprovalStatus, domain.StatusPending); err != nil {
		return domain.Seller{}, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE sellers SET store_name=?, store_description=?, gst_number=?, address=?, phone_number=?,
		  approval_status='pending', rejection_reason='', updated_at=?
		WHERE id=? AND approval_status=?
	`, p.StoreName, p.StoreDescription, p.GSTNumber, p.Address, p.PhoneNumber, at, cur.ID, cur.ApprovalStatus); err != nil {
		return domain.Seller{}, err
	}

	var out domain.Seller
	if err := tx.GetContext(ctx, &out, `SELECT `+sellerCols+` FROM sellers WHERE id=?`, cur.ID); err != nil {
		return domain.Seller{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Seller{}, err
	}
	return out, nil
}
