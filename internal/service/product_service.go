package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FilterProducts keeps the products matching the category and price bracket,
// preserving order. A nil category matches everything.
func FilterProducts(products []model.Product, filter model.ProductFilter) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if filter.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *filter.CategoryID) {
			continue
		}
		if !filter.PriceRange.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// List fetches the full catalogue and filters it in memory.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if !filter.PriceRange.Valid() {
		return nil, model.ErrInvalidFilter
	}

	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	filtered := FilterProducts(products, filter)

	s.logger.Debug().
		Int("total", len(products)).
		Int("matched", len(filtered)).
		Str("price_range", string(filter.PriceRange)).
		Msg("retrieved products")

	return filtered, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// GetDetail attaches the category when the product's reference still resolves.
func (s *productService) GetDetail(ctx context.Context, id uuid.UUID) (*model.ProductDetail, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &model.ProductDetail{Product: *product}
	if product.CategoryID == nil {
		return detail, nil
	}

	category, err := s.categoryRepo.GetByID(ctx, *product.CategoryID)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("product_id", id.String()).
			Str("category_id", product.CategoryID.String()).
			Msg("failed to resolve product category")
		return detail, nil
	}
	detail.Category = category

	return detail, nil
}

func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{ID: uuid.New(), CreatedAt: now}
	applyProductRequest(product, req, now)

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", product.ID.String()).Msg("product created")

	return product, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &model.Product{ID: id}
	applyProductRequest(product, req, time.Now().UTC())

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")

	return nil
}

func validateProductRequest(req *model.ProductRequest) error {
	if req == nil || strings.TrimSpace(req.Name) == "" {
		return model.MissingField("name")
	}
	if req.Price == nil {
		return model.MissingField("price")
	}
	if req.Stock == nil {
		return model.MissingField("stock")
	}
	if req.Price.IsNegative() {
		return model.ErrInvalidPrice
	}
	if *req.Stock < 0 {
		return model.ErrInvalidStock
	}
	return nil
}

func applyProductRequest(p *model.Product, req *model.ProductRequest, now time.Time) {
	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.Price = req.Price.Round(2)
	p.CategoryID = req.CategoryID
	p.ImageURL = req.ImageURL
	p.Stock = *req.Stock
	p.UpdatedAt = now
}
