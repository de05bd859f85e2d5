package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"corpusprep/internal/storage"
)

// Source column names in the raw B2W corpus.
const (
	ReviewColumn    = "review_text"
	RecommendColumn = "recommend_to_a_friend"
)

// ReadOptions enumerates the recognized csv reader settings. There is no
// pass-through of arbitrary options: anything outside this structure is
// rejected by Validate before a single row is read.
type ReadOptions struct {
	// Delimiter separates fields in the raw csv.
	Delimiter rune
	// Limit caps the number of data rows read; 0 reads everything.
	Limit int
	// Columns maps source column names to dataset column names. Only
	// "text" and "target" are valid destinations.
	Columns map[string]string
}

// DefaultReadOptions selects the review text and recommendation columns of
// the B2W corpus, renamed to text and target.
func DefaultReadOptions() ReadOptions {
	return ReadOptions{
		Delimiter: ';',
		Columns: map[string]string{
			ReviewColumn:    "text",
			RecommendColumn: "target",
		},
	}
}

func (o ReadOptions) Validate() error {
	if o.Delimiter == 0 {
		return fmt.Errorf("read options: delimiter is required")
	}
	if o.Limit < 0 {
		return fmt.Errorf("read options: limit must not be negative")
	}
	text, target := o.sourceColumns()
	if text == "" || target == "" {
		return fmt.Errorf("read options: column selections for text and target are required")
	}
	for src, dst := range o.Columns {
		if dst != "text" && dst != "target" {
			return fmt.Errorf("read options: unrecognized column mapping %s=%s", src, dst)
		}
	}
	return nil
}

func (o ReadOptions) sourceColumns() (text, target string) {
	for src, dst := range o.Columns {
		switch dst {
		case "text":
			text = src
		case "target":
			target = src
		}
	}
	return text, target
}

// LoadRecommendationData reads the raw corpus from the object store and
// builds the recommendation dataset: the selected source columns are
// renamed to text and target, every other column is dropped, and target
// values are coerced to binary labels where possible. Malformed rows abort
// the load.
func LoadRecommendationData(ctx context.Context, store storage.ObjectStore, bucket, key string, opts ReadOptions) (Dataset, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	textCol, targetCol := opts.sourceColumns()

	stream, err := store.GetObjectStream(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("loading corpus %s: %w", key, err)
	}
	defer stream.Close()

	r := csv.NewReader(stream)
	r.Comma = opts.Delimiter

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("loading corpus %s: reading header: %w", key, err)
	}

	textIdx, targetIdx := -1, -1
	for i, col := range header {
		switch col {
		case textCol:
			textIdx = i
		case targetCol:
			targetIdx = i
		}
	}
	if textIdx < 0 || targetIdx < 0 {
		return nil, fmt.Errorf("loading corpus %s: columns %s and %s not found in header", key, textCol, targetCol)
	}

	var dataset Dataset
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("loading corpus %s: %w", key, err)
		}
		dataset = append(dataset, Record{
			Text:   row[textIdx],
			Target: CoerceTarget(row[targetIdx]),
		})
		if opts.Limit > 0 && len(dataset) >= opts.Limit {
			break
		}
	}

	return dataset, nil
}
