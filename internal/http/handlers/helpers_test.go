package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"sellerhub/internal/domain"
	"sellerhub/internal/http/handlers"
	"sellerhub/internal/identity"
	applog "sellerhub/internal/log"
	"sellerhub/internal/repos"
	"sellerhub/internal/services"
)

const testSecret = "test-secret"

type testEnv struct {
	app    *fiber.App
	db     *sqlx.DB
	users  *repos.UserRepo
	tokens *identity.JWTVerifier
}

type envOption func(*services.AuthService)

func withoutProvisioning() envOption {
	return func(a *services.AuthService) { a.AutoProvision = false }
}

// newEnv builds the API the way cmd/sellerhub does, minus the limiter and helmet.
func newEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tokens := identity.NewJWTVerifier(testSecret)
	users := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(tokens, users, true)

	for _, o := range opts {
		o(authSvc)
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler, BodyLimit: 1 << 20})
	app.Use(requestid.New())
	app.Use(applog.RequestLogger())
	app.Use(recover.New())
	handlers.Routes(app, handlers.NewDeps(db, authSvc))

	return &testEnv{app: app, db: db, users: users, tokens: tokens}
}

func (e *testEnv) token(t *testing.T, uid string) string {
	t.Helper()
	tok, err := e.tokens.Mint(domain.Principal{UID: uid, Email: uid + "@shop.test", Name: "User " + uid}, time.Hour)
	require.NoError(t, err)
	return tok
}

// admin registers uid as an administrator and returns its token.
func (e *testEnv) admin(t *testing.T, uid string) string {
	t.Helper()
	_, _, err := e.users.EnsureAdmin(context.Background(),
		domain.Principal{UID: uid, Email: uid + "@shop.test", Name: "Admin"}, domain.Timestamp(time.Now()))
	require.NoError(t, err)
	return e.token(t, uid)
}

type result struct {
	status int
	body   []byte
}

func (r result) decode(t *testing.T, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, dst), "body=%s", r.body)
}

func (r result) errBody(t *testing.T) (msg, code string) {
	t.Helper()
	var eb struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	r.decode(t, &eb)
	return eb.Error, eb.Code
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) result {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return result{status: resp.StatusCode, body: raw}
}

func application() map[string]any {
	return map[string]any{
		"storeName":        "Desi Threads",
		"storeDescription": "Handloom shirts",
		"gstNumber":        "27AAAPL1234C1Z5",
		"address":          "12 MG Road, Pune",
		"phoneNumber":      "+919876543210",
	}
}

type sellerBody struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	Email           string `json:"email"`
	StoreName       string `json:"storeName"`
	ApprovalStatus  string `json:"approvalStatus"`
	RejectionReason string `json:"rejectionReason"`
	CreatedAt       string `json:"createdAt"`
}

// apply submits an application for uid and returns the new seller id.
func (e *testEnv) apply(t *testing.T, uid string) int64 {
	t.Helper()
	r := e.do(t, http.MethodPost, "/api/sellers/apply", e.token(t, uid), application())
	require.Equal(t, http.StatusOK, r.status, "body=%s", r.body)
	var out struct {
		Seller sellerBody `json:"seller"`
	}
	r.decode(t, &out)
	return out.Seller.ID
}

// logCapture installs a logger that also writes JSON lines into a buffer.
type logCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *logCapture) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Kind   string         `json:"kind"`
	UserID int64          `json:"user_id"`
	ReqID  string         `json:"req_id"`
	Status int            `json:"status"`
	Err    string         `json:"err"`
	Fields map[string]any `json:"fields"`
}

func captureLogs(t *testing.T) *logCapture {
	t.Helper()
	lc := &logCapture{}
	applog.Init("test", lc)
	t.Cleanup(func() { applog.Init("test") })
	return lc
}

func (l *logCapture) entries() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, line := range strings.Split(strings.TrimSpace(l.buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			out = append(out, e)
		}
	}
	return out
}

func (l *logCapture) find(action string) (logEntry, bool) {
	for _, e := range l.entries() {
		if e.Action == action {
			return e, true
		}
	}
	return logEntry{}, false
}
