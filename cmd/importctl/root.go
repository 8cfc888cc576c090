package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	app "github.com/ekaterinavoj/validity-view/internal/application/trainingimport"
	"github.com/ekaterinavoj/validity-view/internal/config"
	domain "github.com/ekaterinavoj/validity-view/internal/domain/training"
	infrafile "github.com/ekaterinavoj/validity-view/internal/infrastructure/file"
	"github.com/ekaterinavoj/validity-view/internal/infrastructure/repository"
	"github.com/ekaterinavoj/validity-view/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type rootOptions struct {
	envFiles []string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "importctl",
		Short:        "Preview and commit training imports from a local spreadsheet",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", config.DefaultEnvFiles, "Env files to load when present")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level")

	cmd.AddCommand(newTemplateCmd())
	cmd.AddCommand(newPreviewCmd(opts))
	cmd.AddCommand(newCommitCmd(opts))
	return cmd
}

// thresholdFlags override the configured similarity thresholds when set.
type thresholdFlags struct {
	minSimilarity int
	autoMatch     int
}

func (f *thresholdFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.minSimilarity, "min-similarity", -1, "Minimum similarity threshold (0-100)")
	cmd.Flags().IntVar(&f.autoMatch, "auto-match", -1, "Auto-match threshold (0-100)")
}

func (f *thresholdFlags) settings(base domain.Settings) (*domain.Settings, error) {
	if f.minSimilarity < 0 && f.autoMatch < 0 {
		return nil, nil
	}
	minSimilarity, autoMatch := base.MinSimilarityThreshold, base.AutoMatchThreshold
	if f.minSimilarity >= 0 {
		minSimilarity = f.minSimilarity
	}
	if f.autoMatch >= 0 {
		autoMatch = f.autoMatch
	}
	settings, err := domain.NewSettings(minSimilarity, autoMatch)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// runtime is the wiring one CLI invocation needs.
type runtime struct {
	cfg      config.Config
	logger   *logrus.Logger
	db       *gorm.DB
	pool     *pgxpool.Pool
	sessions *app.SessionStore
	preview  app.PreviewImport
	review   app.ReviewImport
	commit   app.CommitImport
	queries  *app.SessionQueries
}

func newRuntime(ctx context.Context, opts *rootOptions) (*runtime, error) {
	cfg, err := config.Load(opts.envFiles...)
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	settings, err := cfg.Import.Settings()
	if err != nil {
		return nil, err
	}

	logger := logging.New(opts.logLevel, "text")

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	sessions := app.NewSessionStore(cfg.Import.SessionTTL)
	committer := app.NewCommitter(repository.NewTrainingRepository(pool), app.CommitterConfig{ChunkSize: cfg.Import.ChunkSize}, logger)

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		pool:     pool,
		sessions: sessions,
		preview:  app.NewPreviewImport(repository.NewCatalogueRepository(db), sessions, settings, nil, logger),
		review:   app.NewReviewImport(sessions),
		commit:   app.NewCommitImport(sessions, committer, repository.NewImportRunRepository(db), nil, logger),
		queries:  app.NewSessionQueries(sessions),
	}, nil
}

func (r *runtime) Close() {
	r.pool.Close()
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// previewFile decodes path and classifies it into a new session.
func (r *runtime) previewFile(ctx context.Context, path string, thresholds *thresholdFlags) (app.PreviewImportOutput, error) {
	name, payload, err := infrafile.NewLocalSource(".", 0).Load(ctx, path)
	if err != nil {
		return app.PreviewImportOutput{}, err
	}
	rows, err := infrafile.Decode(name, payload)
	if err != nil {
		return app.PreviewImportOutput{}, err
	}

	base, _ := r.cfg.Import.Settings()
	settings, err := thresholds.settings(base)
	if err != nil {
		return app.PreviewImportOutput{}, err
	}

	return r.preview.Execute(ctx, app.PreviewImportInput{FileName: name, Rows: rows, Settings: settings})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
