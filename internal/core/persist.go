package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"

	"corpusprep/internal/corpus"
	"corpusprep/internal/storage"
)

// ErrPersistFailed wraps any failure while writing a prepared split.
var ErrPersistFailed = errors.New("dataset persist failed")

// PersistReport summarizes one written split: the row count and the
// relative frequency of the binary labels. Values outside {"0", "1"},
// including missing ones, are excluded from the frequencies but are still
// written.
type PersistReport struct {
	Rows         int
	LabelBalance map[string]float64
}

// Persist writes d as ;-delimited UTF-8 csv with a text;target header and
// no index column. Nothing is rolled back on failure.
func Persist(ctx context.Context, store storage.ObjectStore, bucket, key string, d corpus.Dataset) (PersistReport, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write([]string{"text", "target"}); err != nil {
		return PersistReport{}, fmt.Errorf("%w: writing header: %v", ErrPersistFailed, err)
	}
	for _, r := range d {
		if err := w.Write([]string{r.Text, r.Target}); err != nil {
			return PersistReport{}, fmt.Errorf("%w: writing row: %v", ErrPersistFailed, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return PersistReport{}, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	if err := store.PutObject(ctx, bucket, key, &buf); err != nil {
		return PersistReport{}, fmt.Errorf("%w: uploading %s: %v", ErrPersistFailed, key, err)
	}

	slog.Info("split persisted", "bucket", bucket, "key", key, "rows", len(d))

	return PersistReport{Rows: len(d), LabelBalance: LabelBalance(d)}, nil
}

// LabelBalance computes the relative frequency of the "0" and "1" labels
// among records carrying a binary label.
func LabelBalance(d corpus.Dataset) map[string]float64 {
	counts := make(map[string]int)
	total := 0
	for _, r := range d {
		if r.Target == "0" || r.Target == "1" {
			counts[r.Target]++
			total++
		}
	}

	balance := make(map[string]float64, len(counts))
	for label, c := range counts {
		balance[label] = float64(c) / float64(total)
	}
	return balance
}
