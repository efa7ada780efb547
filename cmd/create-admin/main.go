// Command create-admin registers an identity as an administrator.
//
//	create-admin -uid <firebase uid> -email ops@example.com -name "Ops"
//
// Running it again for the same uid promotes the existing user instead of failing.
package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"sellerhub/internal/config"
	"sellerhub/internal/domain"
	applog "sellerhub/internal/log"
	"sellerhub/internal/repos"
)

func main() {
	uid := flag.String("uid", "", "identity provider uid of the admin (required)")
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "", "admin display name")
	flag.Parse()

	cfg := config.Load()
	logger := applog.Init(cfg.Env).WithOptions(zap.AddCallerSkip(-2))
	defer func() { _ = logger.Sync() }()

	if strings.TrimSpace(*uid) == "" {
		flag.Usage()
		os.Exit(2)
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		logger.Fatal("open database", zap.String("dsn", cfg.DBDSN), zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p := domain.Principal{UID: strings.TrimSpace(*uid), Email: strings.TrimSpace(*email), Name: strings.TrimSpace(*name)}
	u, created, err := repos.NewUserRepo(db).EnsureAdmin(ctx, p, domain.Timestamp(time.Now()))
	if err != nil {
		logger.Fatal("create admin", zap.String("uid", p.UID), zap.Error(err))
	}
	logger.Info("admin ready", zap.Int64("user_id", u.ID), zap.String("uid", u.FirebaseUID), zap.Bool("created", created))
}
