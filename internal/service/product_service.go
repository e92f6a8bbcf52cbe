package service

import (
	"context"
	"mime/multipart"
	"time"

	"pizza-shop/internal/model"
	"pizza-shop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	images      ImageStore
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	images ImageStore,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo: productRepo,
		images:      images,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List returns every product.
func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.GetAll(ctx)
}

// Get returns a single product.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Create adds a product with an optional image upload.
func (s *productService) Create(ctx context.Context, input ProductInput, image *multipart.FileHeader) (*model.Product, error) {
	product := &model.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		Price:       input.Price,
		CreatedAt:   time.Now(),
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if image != nil {
		path, err := s.images.Save(image)
		if err != nil {
			return nil, err
		}
		product.Image = path
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if product.Image != "" {
			if delErr := s.images.Delete(product.Image); delErr != nil {
				s.logger.Warn().Err(delErr).Msg("failed to remove orphaned image")
			}
		}
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID.String()).Str("name", product.Name).Msg("product created")
	return product, nil
}

// Update replaces the whole product. A supplied image replaces the stored
// one; without an upload the image is cleared.
func (s *productService) Update(ctx context.Context, id uuid.UUID, input ProductInput, image *multipart.FileHeader) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	updated := &model.Product{
		ID:          product.ID,
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		Price:       input.Price,
		CreatedAt:   product.CreatedAt,
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}

	if image != nil {
		path, err := s.images.Save(image)
		if err != nil {
			return nil, err
		}
		updated.Image = path
	}

	if product.Image != "" && product.Image != updated.Image {
		if err := s.images.Delete(product.Image); err != nil {
			s.logger.Warn().Err(err).Str("image", product.Image).Msg("failed to delete replaced image")
		}
	}

	if err := s.productRepo.Update(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product replaced")
	return updated, nil
}

// Patch overlays the supplied fields; the image changes only when a new
// one is uploaded.
func (s *productService) Patch(ctx context.Context, id uuid.UUID, patch ProductPatch, image *multipart.FileHeader) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Type != nil {
		product.Type = *patch.Type
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if image != nil {
		path, err := s.images.Save(image)
		if err != nil {
			return nil, err
		}
		if product.Image != "" {
			if err := s.images.Delete(product.Image); err != nil {
				s.logger.Warn().Err(err).Str("image", product.Image).Msg("failed to delete replaced image")
			}
		}
		product.Image = path
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product patched")
	return product, nil
}

// Delete removes a product and its stored image.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	if product.Image != "" {
		if err := s.images.Delete(product.Image); err != nil {
			s.logger.Warn().Err(err).Str("image", product.Image).Msg("failed to delete product image")
		}
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return product, nil
}
