package impl

import (
	"context"
	"log/slog"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo repository.ProductRepository
	vendorRepo  repository.VendorRepository
	logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	productRepo repository.ProductRepository,
	vendorRepo repository.VendorRepository,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		productRepo: productRepo,
		vendorRepo:  vendorRepo,
		logger:      logger,
	}
}

// ListPublicProducts returns the storefront: approved, visible products.
func (srv *catalogService) ListPublicProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListPublic(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list public products")
	}

	return products, nil
}

// GetVendorProfile returns the vendor profile owned by a user.
func (srv *catalogService) GetVendorProfile(ctx context.Context, userID uuid.UUID) (*entity.Vendor, error) {
	vendor, err := srv.vendorRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrVendorNotFound) {
			return nil, domainerrors.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch vendor profile")
	}

	return vendor, nil
}

// ListVendorProducts returns every product owned by the vendor, including
// pending and rejected ones.
func (srv *catalogService) ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vendor products")
	}

	return products, nil
}

// AddProduct lists a new product. New products always start PENDING and
// hidden, regardless of what the vendor submits.
func (srv *catalogService) AddProduct(ctx context.Context, input *usecase.AddProductInput) (*entity.Product, error) {
	if !input.Price.IsPositive() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must be greater than zero")
	}
	if input.Stock < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("stock must not be negative")
	}

	product := &entity.Product{
		VendorID:    input.VendorID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price.Round(2),
		Stock:       input.Stock,
		Status:      entity.ApprovalPending,
		IsVisible:   false,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.logger.Info("Product listed", "productID", product.ID, "vendorID", product.VendorID)

	return product, nil
}

// UpdateProduct applies a vendor edit. Any accepted edit resets the product
// to PENDING and hides it until an admin re-approves.
func (srv *catalogService) UpdateProduct(ctx context.Context, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to fetch product")
	}

	if product.VendorID != input.VendorID {
		return nil, domainerrors.ErrProductOwnership
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, domainerrors.ErrValidationFailed.WithDetails("title must not be empty")
		}
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("price must be greater than zero")
		}
		product.Price = input.Price.Round(2)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("stock must not be negative")
		}
		product.Stock = *input.Stock
	}

	// Edits invalidate any earlier approval.
	product.Status = entity.ApprovalPending
	product.IsVisible = false

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	srv.logger.Info("Product updated", "productID", product.ID, "vendorID", product.VendorID)

	return product, nil
}

// DeleteProduct removes a product owned by the vendor.
func (srv *catalogService) DeleteProduct(ctx context.Context, productID, vendorID uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, productID, vendorID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to delete product")
	}

	srv.logger.Info("Product deleted", "productID", productID, "vendorID", vendorID)

	return nil
}
