package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sellerhub/internal/apperr"
	"sellerhub/internal/config"
	"sellerhub/internal/http/handlers"
	"sellerhub/internal/identity"
	applog "sellerhub/internal/log"
	"sellerhub/internal/repos"
	"sellerhub/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	var sinks []io.Writer
	var logFileErr error
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			logFileErr = err
		} else {
			defer f.Close()
			sinks = append(sinks, f)
		}
	}
	// applog wraps calls two frames deep; direct calls here need the skip undone
	logger := applog.Init(cfg.Env, sinks...).WithOptions(zap.AddCallerSkip(-2))
	defer func() { _ = logger.Sync() }()
	if logFileErr != nil {
		logger.Warn("could not open log file", zap.String("path", cfg.LogFile), zap.Error(logFileErr))
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.String("env", cfg.Env), zap.String("auth", cfg.AuthMode), zap.Error(err))
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		logger.Fatal("open database", zap.String("dsn", cfg.DBDSN), zap.Error(err))
	}
	defer db.Close()

	verifier, err := newVerifier(context.Background(), cfg)
	if err != nil {
		logger.Fatal("identity provider", zap.String("mode", cfg.AuthMode), zap.Error(err))
	}
	authSvc := services.NewAuthService(verifier, repos.NewUserRepo(db), cfg.AutoProvisionUsers)

	app := fiber.New(fiber.Config{
		AppName:      "sellerhub",
		BodyLimit:    cfg.BodyLimitBytes,
		ErrorHandler: handlers.ErrorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(applog.RequestLogger())
	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.Production()}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitPerMin,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.limit.hit", nil)
			return apperr.RateLimited("Too many requests. Please try again later.")
		},
	}))

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db, authSvc)
	handlers.Routes(app, deps)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		logger.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	logger.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env), zap.String("auth", cfg.AuthMode))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
}

func newVerifier(ctx context.Context, cfg config.Config) (identity.Verifier, error) {
	switch cfg.AuthMode {
	case config.AuthModeFirebase:
		v, err := identity.DialFirebase(ctx, identity.FirebaseOptions{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsJSON: cfg.FirebaseCredentialsJSON,
			CredentialsFile: cfg.FirebaseCredentialsFile,
		})
		if err != nil {
			return nil, err
		}
		return v, nil
	case config.AuthModeJWT:
		return identity.NewJWTVerifier(cfg.JWTSecret), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.AuthMode)
	}
}
