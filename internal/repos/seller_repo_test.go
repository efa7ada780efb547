package repos_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sellerhub/internal/domain"
	"sellerhub/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mkUser(t *testing.T, db *sqlx.DB, uid string) *domain.User {
	t.Helper()
	u, err := repos.NewUserRepo(db).EnsureBuyer(context.Background(),
		domain.Principal{UID: uid, Email: uid + "@shop.test", Name: uid}, "2026-01-01T00:00:00.000000Z")
	require.NoError(t, err)
	return u
}

func mkSeller(t *testing.T, repo *repos.SellerRepo, u *domain.User, at string) domain.Seller {
	t.Helper()
	s := domain.Seller{
		UserID: u.ID, FirebaseUID: u.FirebaseUID, Email: u.Email, Name: u.Name,
		StoreName: u.Name + " store", ApprovalStatus: domain.StatusPending, CreatedAt: at, UpdatedAt: at,
	}
	require.NoError(t, repo.Create(context.Background(), &s))
	return s
}

func TestSellerRepo_CreateIsUniquePerUser(t *testing.T) {
	db := memdb(t)
	repo := repos.NewSellerRepo(db)
	u := mkUser(t, db, "uid-1")

	first := mkSeller(t, repo, u, "2026-01-01T00:00:01.000000Z")
	assert.NotZero(t, first.ID)

	dup := domain.Seller{UserID: u.ID, StoreName: "again", ApprovalStatus: domain.StatusPending,
		CreatedAt: "2026-01-01T00:00:02.000000Z", UpdatedAt: "2026-01-01T00:00:02.000000Z"}
	err := repo.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, repos.ErrDuplicate)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM sellers WHERE user_id=?`, u.ID))
	assert.Equal(t, 1, n)
}

func TestSellerRepo_ListOrdersByCreatedAt(t *testing.T) {
	db := memdb(t)
	repo := repos.NewSellerRepo(db)

	// inserted out of chronological order on purpose
	mkSeller(t, repo, mkUser(t, db, "late"), "2026-01-03T00:00:00.000000Z")
	mkSeller(t, repo, mkUser(t, db, "early"), "2026-01-01T00:00:00.000000Z")
	mid := mkSeller(t, repo, mkUser(t, db, "mid"), "2026-01-02T00:00:00.000000Z")

	_, err := repo.Decide(context.Background(), mid.ID, repos.Decision{Status: domain.StatusRejected, At: "2026-01-04T00:00:00.000000Z"})
	require.NoError(t, err)

	all, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].CreatedAt, all[i].CreatedAt)
	}
	assert.Equal(t, "early", all[0].FirebaseUID)

	pending, err := repo.ListByStatus(context.Background(), domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "early", pending[0].FirebaseUID)
	assert.Equal(t, "late", pending[1].FirebaseUID)
}

func TestSellerRepo_DecideApprovePromotesUser(t *testing.T) {
	db := memdb(t)
	repo := repos.NewSellerRepo(db)
	u := mkUser(t, db, "uid-approve")
	s := mkSeller(t, repo, u, "2026-01-01T00:00:00.000000Z")

	at := "2026-02-01T00:00:00.000000Z"
	got, err := repo.Decide(context.Background(), s.ID, repos.Decision{Status: domain.StatusApproved, At: at})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.ApprovalStatus)
	assert.Equal(t, at, got.UpdatedAt)

	after, err := repos.NewUserRepo(db).ByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSeller, after.Role)
	assert.Equal(t, domain.StatusApproved, after.ApprovalStatus)

	_, err = repo.Decide(context.Background(), s.ID, repos.Decision{Status: domain.StatusRejected, At: at})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "approved is terminal")
}

func TestSellerRepo_DecideUnknownID(t *testing.T) {
	repo := repos.NewSellerRepo(memdb(t))
	_, err := repo.Decide(context.Background(), 999, repos.Decision{Status: domain.StatusApproved, At: "x"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSellerRepo_RejectKeepsReasonAndResubmitClearsIt(t *testing.T) {
	db := memdb(t)
	repo := repos.NewSellerRepo(db)
	u := mkUser(t, db, "uid-reject")
	s := mkSeller(t, repo, u, "2026-01-01T00:00:00.000000Z")

	_, err := repo.Resubmit(context.Background(), u.ID, domain.StoreProfile{StoreName: "early"}, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "pending cannot be resubmitted")

	rej, err := repo.Decide(context.Background(), s.ID, repos.Decision{
		Status: domain.StatusRejected, Reason: "GST number does not match", At: "2026-01-02T00:00:00.000000Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "GST number does not match", rej.RejectionReason)

	user, err := repos.NewUserRepo(db).ByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBuyer, user.Role, "rejection leaves the user untouched")

	again, err := repo.Resubmit(context.Background(), u.ID, domain.StoreProfile{
		StoreName: "Fixed Store", GSTNumber: "22AAAAA0000A1Z5", Address: "1 Main St", PhoneNumber: "+919800000000",
	}, "2026-01-03T00:00:00.000000Z")
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
	assert.Equal(t, domain.StatusPending, again.ApprovalStatus)
	assert.Equal(t, "Fixed Store", again.StoreName)
	assert.Empty(t, again.RejectionReason)
	assert.Equal(t, s.CreatedAt, again.CreatedAt)
}

func TestSellerRepo_DecideRollsBackWhenUserPromotionFails(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "sqlite")
	repo := repos.NewSellerRepo(db)

	cols := []string{"id", "user_id", "firebase_uid", "email", "name", "store_name", "store_description",
		"gst_number", "address", "phone_number", "approval_status", "rejection_reason", "created_at", "updated_at"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(7), int64(3), "uid", "a@b.c", "A", "Store", "", "", "", "",
			"pending", "", "2026-01-01T00:00:00.000000Z", "2026-01-01T00:00:00.000000Z"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE sellers SET approval_status=?`)).
		WithArgs("approved", "", "now", int64(7), "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET role='seller'`)).
		WithArgs("now", int64(3)).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	_, err = repo.Decide(context.Background(), 7, repos.Decision{Status: domain.StatusApproved, At: "now"})
	assert.EqualError(t, err, "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSellerRepo_DecideDetectsConcurrentChange(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	repo := repos.NewSellerRepo(sqlx.NewDb(mockDB, "sqlite"))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id`)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "approval_status"}).AddRow(int64(9), int64(4), "pending"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE sellers SET approval_status=?`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = repo.Decide(context.Background(), 9, repos.Decision{Status: domain.StatusRejected, At: "now"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}
