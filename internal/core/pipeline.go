package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"corpusprep/internal/config"
	"corpusprep/internal/corpus"
	"corpusprep/internal/database"
	"corpusprep/internal/storage"
)

// CorpusFetcher materializes the raw corpus into the object store.
type CorpusFetcher interface {
	Fetch(ctx context.Context, bucket, key, source string, nrows int) error
}

// DataPrep runs the corpus preparation pipeline end to end: acquire if
// absent, load and rename columns, normalize, filter, split, persist. All
// collaborators are injected; the pipeline holds no package-level state.
type DataPrep struct {
	Store   storage.ObjectStore
	Fetcher CorpusFetcher
	Rng     Permuter
	Bucket  string

	// DB records run metadata when non-nil.
	DB *gorm.DB
}

func (p *DataPrep) Run(ctx context.Context, cfg config.DataConfig) error {
	sizes := SplitSizes{Train: cfg.SizeTrain, Test: cfg.SizeTest, Val: cfg.SizeVal}
	if err := sizes.Validate(); err != nil {
		return err
	}

	if err := p.acquire(ctx, cfg); err != nil {
		return err
	}

	dataset, err := corpus.LoadRecommendationData(ctx, p.Store, p.Bucket, cfg.CSVDataset, corpus.DefaultReadOptions())
	if err != nil {
		return err
	}
	slog.Info("corpus loaded", "key", cfg.CSVDataset, "rows", len(dataset))

	if cfg.DropNA {
		dataset = dataset.DropNA()
		slog.Info("dropped rows with missing values", "rows", len(dataset))
	}

	for i := range dataset {
		dataset[i].Text = Normalize(dataset[i].Text)
	}
	stats := ComputeTokenStats(dataset)
	slog.Info("corpus normalized",
		"rows", stats.Count,
		"mean_tokens", stats.Mean,
		"p50_tokens", stats.P50,
		"p95_tokens", stats.P95,
		"max_tokens", stats.Max)

	if cfg.MaxSentenceSize > 0 {
		dataset = FilterByLength(dataset, cfg.MaxSentenceSize)
		slog.Info("removed sentences over token limit", "max_tokens", cfg.MaxSentenceSize, "rows", len(dataset))
	}

	slog.Info("dataset ready for split", "rows", len(dataset), "balance", LabelBalance(dataset))

	result, err := Split(dataset, sizes, p.Rng)
	if err != nil {
		return err
	}

	runId, err := p.recordRunStart(ctx, cfg.CSVDataset)
	if err != nil {
		return err
	}

	splits := []struct {
		name string
		key  string
		data corpus.Dataset
	}{
		{"train", cfg.CSVTrain, result.Train},
		{"test", cfg.CSVTest, result.Test},
		{"val", cfg.CSVVal, result.Val},
	}

	for _, s := range splits {
		report, err := Persist(ctx, p.Store, p.Bucket, s.key, s.data)
		if err != nil {
			p.recordRunEnd(ctx, runId, database.RunFailed, len(dataset))
			return err
		}
		slog.Info("split written",
			"split", s.name,
			"key", s.key,
			"rows", report.Rows,
			"balance", report.LabelBalance)

		if p.DB != nil {
			err := database.AddSplitReport(ctx, p.DB, database.SplitReport{
				RunId:        runId,
				Name:         s.name,
				Path:         s.key,
				Rows:         report.Rows,
				PositiveFrac: report.LabelBalance["1"],
				NegativeFrac: report.LabelBalance["0"],
			})
			if err != nil {
				return err
			}
		}
	}

	p.recordRunEnd(ctx, runId, database.RunCompleted, len(dataset))
	return nil
}

// acquire performs the idempotent acquisition step: the fetcher is not
// called at all when the destination already exists.
func (p *DataPrep) acquire(ctx context.Context, cfg config.DataConfig) error {
	exists, err := p.Store.Exists(ctx, p.Bucket, cfg.CSVDataset)
	if err != nil {
		return fmt.Errorf("checking corpus existence: %w", err)
	}
	if exists {
		slog.Info("found source dataset", "bucket", p.Bucket, "key", cfg.CSVDataset)
		return nil
	}

	source := cfg.SourceURL
	if source == "" {
		source = corpus.CorpusURL
	}

	slog.Info("downloading source dataset", "source", source, "key", cfg.CSVDataset, "nrows", cfg.NRows)
	return p.Fetcher.Fetch(ctx, p.Bucket, cfg.CSVDataset, source, cfg.NRows)
}

func (p *DataPrep) recordRunStart(ctx context.Context, dataset string) (uuid.UUID, error) {
	if p.DB == nil {
		return uuid.Nil, nil
	}
	return database.CreateRun(ctx, p.DB, dataset)
}

func (p *DataPrep) recordRunEnd(ctx context.Context, runId uuid.UUID, status string, rows int) {
	if p.DB == nil {
		return
	}
	if err := database.UpdateRunStatus(ctx, p.DB, runId, status, rows); err != nil {
		slog.Error("failed to update pipeline run status", "run_id", runId, "error", err)
	}
}
