package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/repository"
	"storefront/internal/seed"
	"storefront/internal/service"
)

// Imports catalog seed files into the database. Paths given as arguments
// replace SEED_FILES.
func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files := cfg.Seed.Files
	if len(args) > 0 {
		files = args
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)

	importer := seed.NewImporter(
		categoryRepo,
		service.NewCategoryService(categoryRepo, logger),
		service.NewProductService(productRepo, categoryRepo, logger),
		logger,
	)

	res, err := seed.Run(ctx, seed.NewLoader(ctx, cfg.S3, logger), importer, files)
	if err != nil {
		return err
	}

	fmt.Printf("Categories: %d created, %d reused\n", res.CategoriesCreated, res.CategoriesReused)
	fmt.Printf("Products:   %d created, %d skipped\n", res.ProductsCreated, res.ProductsSkipped)

	return nil
}
