package core

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpusprep/internal/config"
	"corpusprep/internal/storage"
)

type spyFetcher struct {
	calls int
	body  string
	store storage.ObjectStore
}

func (f *spyFetcher) Fetch(ctx context.Context, bucket, key, source string, nrows int) error {
	f.calls++
	return f.store.PutObject(ctx, bucket, key, strings.NewReader(f.body))
}

func rawCorpus(n int) string {
	var b strings.Builder
	b.WriteString("submission_date;review_text;recommend_to_a_friend;reviewer_state\n")
	for i := 0; i < n; i++ {
		label := "Yes"
		if i%2 == 1 {
			label = "No"
		}
		fmt.Fprintf(&b, "2020-01-01;Great product %d with 2 features.;%s;SP\n", i, label)
	}
	return b.String()
}

func testDataConfig() config.DataConfig {
	return config.DataConfig{
		CSVDataset: "datasets/raw.csv",
		CSVTrain:   "datasets/train.csv",
		CSVTest:    "datasets/test.csv",
		CSVVal:     "datasets/val.csv",
		SizeTrain:  0.7,
		SizeTest:   0.15,
		SizeVal:    0.15,
		DropNA:     true,
	}
}

func newTestPipeline(t *testing.T, body string) (*DataPrep, *spyFetcher) {
	t.Helper()
	store := storage.NewLocalProvider(t.TempDir())
	fetcher := &spyFetcher{body: body, store: store}
	return &DataPrep{
		Store:   store,
		Fetcher: fetcher,
		Rng:     rand.New(rand.NewSource(42)),
		Bucket:  "corpus",
	}, fetcher
}

func readSplit(t *testing.T, store storage.ObjectStore, key string) [][]string {
	t.Helper()
	stream, err := store.GetObjectStream(context.Background(), "corpus", key)
	require.NoError(t, err)
	defer stream.Close()

	r := csv.NewReader(stream)
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestDataPrepRun(t *testing.T) {
	prep, fetcher := newTestPipeline(t, rawCorpus(100))

	require.NoError(t, prep.Run(context.Background(), testDataConfig()))
	assert.Equal(t, 1, fetcher.calls)

	wantRows := map[string]int{
		"datasets/train.csv": 70,
		"datasets/test.csv":  15,
		"datasets/val.csv":   15,
	}
	for key, want := range wantRows {
		rows := readSplit(t, prep.Store, key)
		require.Equal(t, []string{"text", "target"}, rows[0])
		assert.Len(t, rows[1:], want, "rows in %s", key)

		for _, row := range rows[1:] {
			assert.Contains(t, row[0], "NUM", "digits normalized in %q", row[0])
			assert.Contains(t, []string{"0", "1"}, row[1])
		}
	}
}

func TestDataPrepSkipsFetchWhenPresent(t *testing.T) {
	prep, fetcher := newTestPipeline(t, rawCorpus(10))

	require.NoError(t, prep.Store.PutObject(context.Background(), "corpus", "datasets/raw.csv", strings.NewReader(rawCorpus(10))))

	require.NoError(t, prep.Run(context.Background(), testDataConfig()))
	assert.Equal(t, 0, fetcher.calls)
}

func TestDataPrepInvalidSizesBeforeIO(t *testing.T) {
	prep, fetcher := newTestPipeline(t, rawCorpus(10))

	cfg := testDataConfig()
	cfg.SizeTrain, cfg.SizeTest, cfg.SizeVal = 0.6, 0.5, 0.0

	err := prep.Run(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrInvalidSplitSize)
	assert.Equal(t, 0, fetcher.calls)
}

func TestDataPrepReproducibleSplits(t *testing.T) {
	first, _ := newTestPipeline(t, rawCorpus(40))
	second, _ := newTestPipeline(t, rawCorpus(40))

	require.NoError(t, first.Run(context.Background(), testDataConfig()))
	require.NoError(t, second.Run(context.Background(), testDataConfig()))

	for _, key := range []string{"datasets/train.csv", "datasets/test.csv", "datasets/val.csv"} {
		assert.Equal(t, readSplit(t, first.Store, key), readSplit(t, second.Store, key), "split %s differs between seeded runs", key)
	}
}

func TestDataPrepLengthFilter(t *testing.T) {
	prep, _ := newTestPipeline(t, rawCorpus(20))

	cfg := testDataConfig()
	// normalized reviews are 7 tokens long; a 6-token cap drops them all
	cfg.MaxSentenceSize = 6

	require.NoError(t, prep.Run(context.Background(), cfg))

	for _, key := range []string{"datasets/train.csv", "datasets/test.csv", "datasets/val.csv"} {
		rows := readSplit(t, prep.Store, key)
		assert.Len(t, rows, 1, "split %s should only contain the header", key)
	}
}
