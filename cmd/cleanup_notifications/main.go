// Command cleanup_notifications deletes inbox notifications past retention.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/shopcat-service/internal/app/catalog/repo"
	"github.com/light-bringer/shopcat-service/internal/config"
	"github.com/light-bringer/shopcat-service/internal/logger"
	"github.com/light-bringer/shopcat-service/internal/pkg/clock"
)

// expiryStore is the part of the notification repository the job needs.
type expiryStore interface {
	Expired(ctx context.Context, readCutoff, unreadCutoff time.Time) ([]string, error)
	Delete(ctx context.Context, ids []string, batchSize int) (int, error)
}

func main() {
	dryRun := flag.Bool("dry-run", false, "Show what would be deleted without deleting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Debug})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, cfg.SpannerDB)
	if err != nil {
		l.Fatal("failed to create Spanner client", zap.Error(err))
	}
	defer client.Close()

	n, err := cleanup(ctx, repo.NewNotificationRepo(client), cfg.Cleanup, clock.NewRealClock(), *dryRun, l.Sugar())
	if err != nil {
		l.Fatal("cleanup failed", zap.Error(err))
	}
	l.Info("cleanup completed", zap.Int("deleted", n), zap.Bool("dry_run", *dryRun))
}

// cleanup removes expired notifications and returns how many went. In dry-run
// mode it returns how many would go.
func cleanup(ctx context.Context, store expiryStore, cfg config.CleanupConfig, clk clock.Clock, dryRun bool, logger *zap.SugaredLogger) (int, error) {
	now := clk.Now()
	readCutoff := now.Add(-cfg.ReadRetention)
	unreadCutoff := now.Add(-cfg.UnreadRetention)

	logger.Infow("starting notification cleanup",
		"read_cutoff", readCutoff.Format(time.RFC3339),
		"unread_cutoff", unreadCutoff.Format(time.RFC3339),
		"dry_run", dryRun,
	)

	ids, err := store.Expired(ctx, readCutoff, unreadCutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find expired notifications: %w", err)
	}
	if len(ids) == 0 {
		logger.Info("no expired notifications")
		return 0, nil
	}
	if dryRun {
		logger.Infow("dry run, nothing deleted", "would_delete", len(ids))
		return len(ids), nil
	}

	deleted, err := store.Delete(ctx, ids, cfg.BatchSize)
	if err != nil {
		return deleted, fmt.Errorf("deleted %d of %d: %w", deleted, len(ids), err)
	}
	return deleted, nil
}
