package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalProvider is a directory-backed object store used for tests and local
// pipeline runs.
type LocalProvider struct {
	dir string
}

var _ ObjectStore = (*LocalProvider)(nil)

func NewLocalProvider(dir string) *LocalProvider {
	return &LocalProvider{dir: dir}
}

func (p *LocalProvider) CreateBucket(ctx context.Context, bucket string) error {
	return os.MkdirAll(filepath.Join(p.dir, bucket), os.ModePerm)
}

func (p *LocalProvider) Exists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := os.Stat(filepath.Join(p.dir, bucket, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (p *LocalProvider) GetObjectStream(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(p.dir, bucket, key))
}

func (p *LocalProvider) PutObject(ctx context.Context, bucket, key string, data io.Reader) error {
	path := filepath.Join(p.dir, bucket, key)
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		return err
	}

	return nil
}
