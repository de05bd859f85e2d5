package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestProvider(t *testing.T) (*LocalProvider, string) {
	t.Helper()
	dir := t.TempDir()
	return NewLocalProvider(dir), dir
}

func TestLocalProvider_PutObject(t *testing.T) {
	provider, baseDir := setupTestProvider(t)

	bucket := "test-bucket"
	key := "corpus/raw.csv"
	content := []byte("text;target\nhello;Yes\n")

	err := provider.PutObject(context.Background(), bucket, key, bytes.NewReader(content))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(baseDir, bucket, key))
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestLocalProvider_PutObjectOverwrites(t *testing.T) {
	provider, baseDir := setupTestProvider(t)

	bucket := "test-bucket"
	key := "corpus/raw.csv"

	require.NoError(t, provider.PutObject(context.Background(), bucket, key, bytes.NewReader([]byte("first"))))
	require.NoError(t, provider.PutObject(context.Background(), bucket, key, bytes.NewReader([]byte("second"))))

	data, err := os.ReadFile(filepath.Join(baseDir, bucket, key))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestLocalProvider_Exists(t *testing.T) {
	provider, _ := setupTestProvider(t)

	bucket := "test-bucket"
	key := "corpus/raw.csv"

	exists, err := provider.Exists(context.Background(), bucket, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, provider.PutObject(context.Background(), bucket, key, bytes.NewReader([]byte("content"))))

	exists, err = provider.Exists(context.Background(), bucket, key)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalProvider_GetObjectStream(t *testing.T) {
	provider, _ := setupTestProvider(t)

	bucket := "test-bucket"
	key := "corpus/raw.csv"
	content := []byte("streamed content")

	require.NoError(t, provider.PutObject(context.Background(), bucket, key, bytes.NewReader(content)))

	stream, err := provider.GetObjectStream(context.Background(), bucket, key)
	require.NoError(t, err)
	defer stream.Close()

	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestLocalProvider_GetObjectStreamMissing(t *testing.T) {
	provider, _ := setupTestProvider(t)

	_, err := provider.GetObjectStream(context.Background(), "test-bucket", "missing.csv")
	assert.Error(t, err)
}

func TestLocalProvider_CreateBucket(t *testing.T) {
	provider, baseDir := setupTestProvider(t)

	require.NoError(t, provider.CreateBucket(context.Background(), "test-bucket"))

	info, err := os.Stat(filepath.Join(baseDir, "test-bucket"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
