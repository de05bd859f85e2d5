package corpus

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/schollz/progressbar/v3"

	"corpusprep/internal/storage"
)

// CorpusURL is the public location of the raw B2W-Reviews01 csv corpus.
const CorpusURL = "https://raw.githubusercontent.com/b2wdigital/b2w-reviews01/master/B2W-Reviews01.csv"

// ErrAcquisitionFailed wraps any network or storage failure while
// materializing the raw corpus.
var ErrAcquisitionFailed = errors.New("corpus acquisition failed")

// Fetcher materializes a copy of the raw corpus into the object store.
type Fetcher struct {
	client *resty.Client
	store  storage.ObjectStore
}

func NewFetcher(store storage.ObjectStore) *Fetcher {
	return &Fetcher{client: resty.New(), store: store}
}

// Fetch downloads the corpus at source and writes it to bucket/key.
// nrows > 0 re-emits at most nrows data rows (plus header) as ;-delimited
// UTF-8 csv; nrows == 0 copies the source bytes unmodified, with no row
// parsing. The destination is overwritten if present: checking for an
// existing destination is the caller's responsibility, and a failure
// mid-fetch may leave a truncated destination behind.
func (f *Fetcher) Fetch(ctx context.Context, bucket, key, source string, nrows int) error {
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(source)
	if err != nil {
		return fmt.Errorf("%w: requesting %s: %v", ErrAcquisitionFailed, source, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: requesting %s: unexpected status %s", ErrAcquisitionFailed, source, resp.Status())
	}

	if nrows > 0 {
		err = f.fetchRows(ctx, bucket, key, body, nrows)
	} else {
		err = f.fetchFull(ctx, bucket, key, body, resp.RawResponse.ContentLength)
	}
	if err != nil {
		return err
	}

	slog.Info("corpus fetched", "source", source, "bucket", bucket, "key", key, "nrows", nrows)
	return nil
}

func (f *Fetcher) fetchRows(ctx context.Context, bucket, key string, body io.Reader, nrows int) error {
	r := csv.NewReader(body)
	r.Comma = ';'

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("%w: reading corpus header: %v", ErrAcquisitionFailed, err)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("%w: %v", ErrAcquisitionFailed, err)
	}

	for i := 0; i < nrows; i++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: reading corpus row %d: %v", ErrAcquisitionFailed, i, err)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("%w: %v", ErrAcquisitionFailed, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrAcquisitionFailed, err)
	}

	if err := f.store.PutObject(ctx, bucket, key, &buf); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrAcquisitionFailed, key, err)
	}
	return nil
}

func (f *Fetcher) fetchFull(ctx context.Context, bucket, key string, body io.Reader, size int64) error {
	bar := progressbar.DefaultBytes(size, "downloading corpus")
	defer bar.Close()

	if err := f.store.PutObject(ctx, bucket, key, io.TeeReader(body, bar)); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrAcquisitionFailed, key, err)
	}
	return nil
}
