package seed

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CategoryFinder looks up an existing category by slug.
type CategoryFinder interface {
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
}

// Result summarises an import run.
type Result struct {
	CategoriesCreated int
	CategoriesReused  int
	ProductsCreated   int
	ProductsSkipped   int
}

// Importer writes a catalog through the catalog services so seeded data
// passes the same validation as admin edits.
type Importer struct {
	finder     CategoryFinder
	categories service.CategoryService
	products   service.ProductService
	logger     zerolog.Logger
}

// NewImporter creates a new catalog importer.
func NewImporter(finder CategoryFinder, categories service.CategoryService, products service.ProductService, logger zerolog.Logger) *Importer {
	return &Importer{
		finder:     finder,
		categories: categories,
		products:   products,
		logger:     logger.With().Str("component", "seed-importer").Logger(),
	}
}

// Import creates the catalog's categories, reusing any whose slug already
// exists, then its products. A product whose name is already in the
// catalog is skipped, so importing the same file twice is harmless.
// Products naming an unknown category slug are created uncategorised.
func (i *Importer) Import(ctx context.Context, catalog *Catalog) (Result, error) {
	var res Result
	bySlug := make(map[string]uuid.UUID, len(catalog.Categories))

	for _, rec := range catalog.Categories {
		slug := rec.Slug
		if slug == "" {
			slug = service.Slugify(rec.Name)
		}

		existing, err := i.finder.GetBySlug(ctx, slug)
		if err != nil {
			return res, fmt.Errorf("failed to look up category %q: %w", slug, err)
		}
		if existing != nil {
			bySlug[slug] = existing.ID
			res.CategoriesReused++
			continue
		}

		created, err := i.categories.Create(ctx, &model.CategoryRequest{Name: rec.Name, Slug: slug})
		if err != nil {
			return res, fmt.Errorf("failed to create category %q: %w", slug, err)
		}
		bySlug[created.Slug] = created.ID
		res.CategoriesCreated++
	}

	current, err := i.products.List(ctx, model.ProductFilter{})
	if err != nil {
		return res, fmt.Errorf("failed to list products: %w", err)
	}
	known := make(map[string]bool, len(current))
	for _, p := range current {
		known[strings.ToLower(p.Name)] = true
	}

	for _, rec := range catalog.Products {
		key := strings.ToLower(strings.TrimSpace(rec.Name))
		if known[key] {
			res.ProductsSkipped++
			continue
		}

		req := &model.ProductRequest{
			Name:        rec.Name,
			Description: rec.Description,
			Price:       rec.Price,
			ImageURL:    rec.ImageURL,
			Stock:       rec.Stock,
		}
		if rec.Category != "" {
			id, err := i.resolveCategory(ctx, bySlug, rec.Category)
			if err != nil {
				return res, err
			}
			if id == nil {
				i.logger.Warn().
					Str("product", rec.Name).
					Str("category", rec.Category).
					Msg("unknown category slug, importing product uncategorised")
			}
			req.CategoryID = id
		}

		if _, err := i.products.Create(ctx, req); err != nil {
			return res, fmt.Errorf("failed to create product %q: %w", rec.Name, err)
		}
		known[key] = true
		res.ProductsCreated++
	}

	i.logger.Info().
		Int("categories_created", res.CategoriesCreated).
		Int("categories_reused", res.CategoriesReused).
		Int("products_created", res.ProductsCreated).
		Int("products_skipped", res.ProductsSkipped).
		Msg("catalog imported")

	return res, nil
}

// resolveCategory returns the id for slug, consulting the store for
// categories created outside this catalog. A nil id means no match.
func (i *Importer) resolveCategory(ctx context.Context, bySlug map[string]uuid.UUID, slug string) (*uuid.UUID, error) {
	if id, ok := bySlug[slug]; ok {
		return &id, nil
	}

	existing, err := i.finder.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category %q: %w", slug, err)
	}
	if existing == nil {
		return nil, nil
	}

	bySlug[slug] = existing.ID
	return &existing.ID, nil
}

// Run loads each path through loader and imports it.
func Run(ctx context.Context, loader Loader, importer *Importer, paths []string) (Result, error) {
	var total Result
	for _, path := range paths {
		catalog, err := loader.Load(ctx, path)
		if err != nil {
			return total, err
		}

		res, err := importer.Import(ctx, catalog)
		total.CategoriesCreated += res.CategoriesCreated
		total.CategoriesReused += res.CategoriesReused
		total.ProductsCreated += res.ProductsCreated
		total.ProductsSkipped += res.ProductsSkipped
		if err != nil {
			return total, fmt.Errorf("failed to import %s: %w", path, err)
		}
	}
	return total, nil
}
