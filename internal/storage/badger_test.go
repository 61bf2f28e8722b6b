package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolscout/internal/domain"
)

// setupTestDB creates a temporary BadgerDB instance for testing.
func setupTestDB(t *testing.T) (*BadgerRepository, func()) {
	t.Helper()

	testLogger := logrus.New()
	testLogger.SetOutput(os.Stderr)
	testLogger.SetLevel(logrus.ErrorLevel)

	repo, err := NewBadgerRepository(t.TempDir(), testLogger)
	require.NoError(t, err, "Failed to create test BadgerDB repository")

	cleanup := func() {
		assert.NoError(t, repo.Close(), "Failed to close test BadgerDB repository")
	}
	return repo, cleanup
}

func TestBadgerRepository_SaveAndList(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	older := domain.Product{
		ID:        "id-1",
		URL:       "https://example.com/one",
		Codename:  "Example",
		Tags:      []string{"ai-tool", "scraped"},
		CreatedAt: time.Now().Add(-time.Hour),
	}
	newer := domain.Product{
		ID:        "id-2",
		URL:       "https://another.ai",
		Codename:  "Another",
		CreatedAt: time.Now(),
	}

	require.NoError(t, repo.SaveProduct(ctx, older))
	require.NoError(t, repo.SaveProduct(ctx, newer))

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, newer.URL, products[0].URL, "newest first")
	assert.Equal(t, older.URL, products[1].URL)
	assert.Equal(t, []string{"ai-tool", "scraped"}, products[1].Tags)
}

func TestBadgerRepository_SaveReplacesByURL(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	first := domain.Product{ID: "original-id", URL: "https://example.com", Punchline: "First"}
	require.NoError(t, repo.SaveProduct(ctx, first))

	second := domain.Product{ID: "new-id", URL: "https://example.com", Punchline: "Second"}
	require.NoError(t, repo.SaveProduct(ctx, second))

	got, err := repo.GetProduct(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "original-id", got.ID)
	assert.Equal(t, "Second", got.Punchline)
	assert.False(t, got.CreatedAt.IsZero())

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestBadgerRepository_SaveRequiresURL(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	assert.Error(t, repo.SaveProduct(context.Background(), domain.Product{ID: "x"}))
}

func TestBadgerRepository_GetProduct(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	meta := &domain.ScrapedMetadata{
		URL:    "https://pixelforge.ai",
		Domain: "pixelforge.ai",
		Name:   "Pixelforge",
		Title:  domain.BilingualContent{Original: "PixelForge"},
		Tags:   []string{"image"},
	}
	product := domain.NewProduct(meta, 42)
	require.NoError(t, repo.SaveProduct(ctx, product))

	got, err := repo.GetProduct(ctx, "https://pixelforge.ai")
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, int64(42), got.SubmittedBy)
	require.NotNil(t, got.Metadata)
	assert.Equal(t, "pixelforge.ai", got.Metadata.Domain)

	_, err = repo.GetProduct(ctx, "https://missing.example")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestBadgerRepository_DeleteProduct(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, repo.SaveProduct(ctx, domain.Product{ID: "a", URL: "https://example.com/delete"}))
	require.NoError(t, repo.SaveProduct(ctx, domain.Product{ID: "b", URL: "https://example.com/keep"}))

	require.NoError(t, repo.DeleteProduct(ctx, "https://example.com/delete"))

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "https://example.com/keep", products[0].URL)

	assert.NoError(t, repo.DeleteProduct(ctx, "https://example.com/does_not_exist"))
	assert.NoError(t, repo.DeleteProduct(ctx, "https://example.com/delete"))

	products, err = repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestBadgerRepository_RunGCStopsOnCancel(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		repo.RunGC(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunGC did not stop after cancel")
	}
}
