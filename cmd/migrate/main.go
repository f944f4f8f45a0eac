// Command migrate applies migrations/ to the configured database with the
// atlas CLI. The atlas binary must be on PATH.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/url"
	"os"
	"time"

	"gin-jobqueue/internal/handler/middleware"
	"gin-jobqueue/internal/pkg/config"
	"gin-jobqueue/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	status := flag.Bool("status", false, "report pending migrations without applying them")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, logger, cfg.DB, *dir, *status); err != nil {
		logger.Error("マイグレーションに失敗しました", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, dbCfg config.DBConfig, dir string, statusOnly bool) error {
	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		return errs.Wrap(err, "initialize atlas client")
	}

	dbURL := databaseURL(dbCfg)
	dirURL := "file://" + dir

	if statusOnly {
		st, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{
			URL:    dbURL,
			DirURL: dirURL,
		})
		if err != nil {
			return errs.Wrap(err, "read migration status")
		}
		logger.Info("migration status",
			"status", st.Status,
			"current", st.Current,
			"pending", len(st.Pending))
		return nil
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dbURL,
		DirURL: dirURL,
	})
	if err != nil {
		return errs.Wrap(err, "apply migrations")
	}
	logger.Info("migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target)
	return nil
}

// databaseURL drops the timezone parameter that atlas does not accept.
func databaseURL(c config.DBConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}
