package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aviaprep/typerating-engine/internal/config"
	"github.com/aviaprep/typerating-engine/internal/infra/postgres"
	pgrepo "github.com/aviaprep/typerating-engine/internal/infra/postgres/repository"
	"github.com/aviaprep/typerating-engine/internal/logger"
	"github.com/aviaprep/typerating-engine/internal/progress"
	"github.com/aviaprep/typerating-engine/internal/repository"
	"github.com/aviaprep/typerating-engine/internal/review"
	"github.com/aviaprep/typerating-engine/internal/session"
)

// app wires configuration, logging, stores and services for the CLI.
// With DATABASE_URL set the stores are PostgreSQL-backed; otherwise the
// JSON bank from config serves questions and review/progress state is
// held in memory for the lifetime of the process.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	pool     *pgxpool.Pool
	sessions *session.Service
	reviews  *review.Manager
	tracker  *progress.Tracker
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log}

	if dsn, err := cfg.DB.DSN(); err == nil {
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.pool = pool

		questionRepo := pgrepo.NewQuestionRepository(pool)
		a.reviews = review.NewManager(pgrepo.NewReviewRepository(pool))
		a.tracker = progress.NewTracker(pgrepo.NewProgressRepository(pool))
		a.sessions = session.NewService(questionRepo, a.reviews, log)
		return a, nil
	}

	log.Info("no DATABASE_URL configured, using JSON bank with in-memory stores",
		zap.String("bank", cfg.BankJSONPath),
	)

	bank, err := repository.NewQuestionBank(cfg.BankJSONPath)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}

	a.reviews = review.NewManager(repository.NewMemoryReviewStore())
	a.tracker = progress.NewTracker(repository.NewMemoryProgressStore())
	a.sessions = session.NewService(bank, a.reviews, log)
	return a, nil
}

func (a *app) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	_ = a.log.Sync()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "engine",
		Short:         "Type-rating exam prep engine",
		Long:          "Assembles question sessions, manages the missed-question review queue and tracks lesson progression for type-rating certification prep.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newAssembleCmd())
	root.AddCommand(newReviewCmd())
	root.AddCommand(newProgressCmd())
	return root
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
