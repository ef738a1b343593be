package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/brand-studio-api/internal/config"
)

func TestLocalStore_PutAndDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "logos/a.png", "image/png", strings.NewReader("png"), 3))

	data, err := os.ReadFile(filepath.Join(store.Root(), "logos", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
	assert.Equal(t, "/uploads/logos/a.png", store.URL("logos/a.png"))

	require.NoError(t, store.Delete(ctx, "logos/a.png"))
	require.NoError(t, store.Delete(ctx, "logos/a.png"))
	_, err = os.Stat(filepath.Join(store.Root(), "logos", "a.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	err = store.Put(context.Background(), "../outside.txt", "text/plain", strings.NewReader("x"), 1)
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, store.Delete(context.Background(), "/etc/passwd"), ErrInvalidKey)
}

func TestNewKey(t *testing.T) {
	key := NewKey("profile", "Me.JPG")
	assert.True(t, strings.HasPrefix(key, "profile/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, NewKey("profile", "Me.JPG"))
}

func TestS3Store_URL(t *testing.T) {
	withCDN, err := NewS3Store(S3Options{Endpoint: "https://s3.example.com/", Region: "eu", Bucket: "brand", PublicURL: "https://cdn.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/logos/a.png", withCDN.URL("logos/a.png"))

	pathStyle, err := NewS3Store(S3Options{Endpoint: "https://s3.example.com/", Region: "eu", Bucket: "brand"})
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/brand/logos/a.png", pathStyle.URL("logos/a.png"))

	_, err = NewS3Store(S3Options{Region: "eu"})
	assert.Error(t, err)
}

func TestNew_SelectsDriver(t *testing.T) {
	store, err := New(&config.Config{StorageDriver: "local", UploadDir: t.TempDir(), UploadPublicURL: "/uploads"})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	store, err = New(&config.Config{StorageDriver: "s3", S3Bucket: "brand", S3Region: "eu"})
	require.NoError(t, err)
	assert.IsType(t, &S3Store{}, store)

	_, err = New(&config.Config{StorageDriver: "ftp"})
	assert.Error(t, err)
}
