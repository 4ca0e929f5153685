package integration

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/repository"
	"storefront/internal/seed"
	"storefront/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogFile = `{"type":"category","name":"Home Decor"}
{"type":"category","name":"Kitchen"}
{"type":"product","name":"Rattan Lamp","price":"24.99","category":"home-decor","stock":12}
{"type":"product","name":"Cast Iron Pan","price":"39.00","category":"kitchen","stock":8}
{"type":"product","name":"Gift Card","price":"50.00","stock":100}
`

func writeGzip(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.jsonl.gz")
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	gw := gzip.NewWriter(file)
	_, err = gw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	return path
}

func TestSeedImport_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()
	logger := zerolog.Nop()

	categoryRepo := repository.NewCategoryRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	importer := seed.NewImporter(
		categoryRepo,
		service.NewCategoryService(categoryRepo, logger),
		service.NewProductService(productRepo, categoryRepo, logger),
		logger,
	)
	loader := seed.NewFileLoader(logger)
	path := writeGzip(t, catalogFile)

	res, err := seed.Run(ctx, loader, importer, []string{path})
	require.NoError(t, err)
	assert.Equal(t, seed.Result{CategoriesCreated: 2, ProductsCreated: 3}, res)

	kitchen, err := categoryRepo.GetBySlug(ctx, "kitchen")
	require.NoError(t, err)
	require.NotNil(t, kitchen)

	products, err := productRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	for _, p := range products {
		switch p.Name {
		case "Cast Iron Pan":
			require.NotNil(t, p.CategoryID)
			assert.Equal(t, kitchen.ID, *p.CategoryID)
			assert.Equal(t, "39.00", p.Price.StringFixed(2))
		case "Gift Card":
			assert.Nil(t, p.CategoryID)
		}
	}

	// A second run reuses categories and skips known products.
	res, err = seed.Run(ctx, loader, importer, []string{path})
	require.NoError(t, err)
	assert.Equal(t, seed.Result{CategoriesReused: 2, ProductsSkipped: 3}, res)

	products, err = productRepo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}
